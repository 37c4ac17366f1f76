package services

import (
	"context"
	"errors"
	"strings"

	"github.com/filmyfim/filmyfim/internal/constants"
	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/llm"
	"github.com/filmyfim/filmyfim/internal/metrics"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/internal/titles"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Recommender drives the seed title -> model -> catalog pipeline.
type Recommender struct {
	llm         llm.Provider
	resolver    *Resolver
	picker      *GenrePicker
	maxBackfill int
	rng         Random
	logger      logger.Logger
}

func NewRecommender(provider llm.Provider, resolver *Resolver, picker *GenrePicker, maxBackfill int, rng Random, log logger.Logger) *Recommender {
	return &Recommender{
		llm:         provider,
		resolver:    resolver,
		picker:      picker,
		maxBackfill: maxBackfill,
		rng:         rng,
		logger:      log,
	}
}

// Recommend returns up to RecommendationCount movies similar to seed, names unique.
// Model suggestions come first in the model's order; genre samples fill the rest.
// Only a failed model call is returned as an error.
func (r *Recommender) Recommend(ctx context.Context, seed string) ([]models.MovieRecord, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, apperrors.NewInvalidRequestError("movie_title must not be empty")
	}

	raw, err := r.llm.Complete(ctx, llm.RecommendationPrompt(seed))
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("llm", "complete").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewTimeoutError("language model request", err)
		}
		return nil, apperrors.NewUpstreamError("language model", err)
	}

	candidates := titles.Normalize(raw)
	r.logger.Infof("[Recommender] %d candidates for %q", len(candidates), seed)
	if len(candidates) == 0 {
		r.logger.Warnf("[Recommender] no titles parsed from model response: %q", raw)
	}

	movies := make([]models.MovieRecord, 0, constants.RecommendationCount)
	accepted := titles.NewNameSet()
	for _, title := range candidates {
		movie := r.resolver.Resolve(ctx, title)
		if accepted.Contains(movie.Name) {
			r.logger.Debugf("[Recommender] skipping duplicate %q", movie.Name)
			continue
		}
		movies = append(movies, movie)
		accepted.Add(movie.Name)
	}

	if len(movies) < constants.RecommendationCount {
		movies = r.backfill(ctx, seed, movies, accepted)
	}

	metrics.RecommendationsReturned.Observe(float64(len(movies)))
	return movies, nil
}

// backfill tops movies up with genre samples. The seed is resolved once so that
// neither its raw nor its catalog name is recommended back. Attempts are bounded;
// when they run out the short list is returned as is.
func (r *Recommender) backfill(ctx context.Context, seed string, movies []models.MovieRecord, accepted titles.NameSet) []models.MovieRecord {
	anchor := r.resolver.Resolve(ctx, seed)
	exclude := accepted.Clone()
	exclude.Add(seed)
	exclude.Add(anchor.Name)
	picker := r.picker.withPageMemo()

	attempts := 0
	for len(movies) < constants.RecommendationCount && attempts < r.maxBackfill {
		if ctx.Err() != nil {
			break
		}
		attempts++

		genreID := constants.GenreIDs[r.rng.IntN(len(constants.GenreIDs))]
		movie, err := picker.Pick(ctx, genreID, exclude, true)
		switch {
		case err != nil:
			metrics.BackfillAttempts.WithLabelValues("error").Inc()
			r.logger.Warnf("[Recommender] backfill pick for genre %d failed: %v", genreID, err)
		case movie == nil:
			metrics.BackfillAttempts.WithLabelValues("empty").Inc()
		case accepted.Contains(movie.Name):
			metrics.BackfillAttempts.WithLabelValues("duplicate").Inc()
		default:
			metrics.BackfillAttempts.WithLabelValues("added").Inc()
			movies = append(movies, *movie)
			accepted.Add(movie.Name)
			exclude.Add(movie.Name)
		}
	}

	if len(movies) < constants.RecommendationCount {
		r.logger.Warnf("[Recommender] backfill exhausted after %d attempts, returning %d of %d for %q",
			attempts, len(movies), constants.RecommendationCount, seed)
	}
	return movies
}

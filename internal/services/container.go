// Package services implements the recommendation pipeline and its provider clients.
package services

import (
	"context"
	"math/rand/v2"

	"github.com/filmyfim/filmyfim/internal/constants"
	"github.com/filmyfim/filmyfim/internal/llm"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// CatalogService defines the movie catalog operations the pipeline needs.
type CatalogService interface {
	SearchMovies(ctx context.Context, query string) ([]models.TMDBMovie, error)
	GetMovieDetails(ctx context.Context, id int) (*models.TMDBMovieDetails, error)
	DiscoverMovies(ctx context.Context, params DiscoverParams) ([]models.TMDBMovie, error)
}

// Random is the source of the pipeline's sampling decisions. Implementations must be
// safe for concurrent use.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// Options tunes the pipeline. Zero values fall back to defaults.
type Options struct {
	TargetLanguage      string
	ImageBaseURL        string
	MaxBackfillAttempts int
	FeaturedLocalize    bool
	Random              Random
}

// Container holds all application services for dependency injection.
type Container struct {
	Catalog     CatalogService
	LLM         llm.Provider
	Translator  *Translator
	Resolver    *Resolver
	GenrePicker *GenrePicker
	Featured    *FeaturedSelector
	Recommender *Recommender
	Logger      logger.Logger
}

// NewContainer wires the pipeline components around the two providers.
func NewContainer(catalog CatalogService, provider llm.Provider, opts Options, log logger.Logger) *Container {
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = constants.DefaultTargetLanguage
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = constants.TMDBImageBaseURL
	}
	if opts.MaxBackfillAttempts <= 0 {
		opts.MaxBackfillAttempts = constants.DefaultMaxBackfill
	}
	if opts.Random == nil {
		opts.Random = globalRandom{}
	}

	translator := NewTranslator(provider, opts.TargetLanguage, log)
	resolver := NewResolver(catalog, translator, opts.ImageBaseURL, log)
	picker := NewGenrePicker(catalog, translator, opts.ImageBaseURL, opts.Random, log)

	return &Container{
		Catalog:     catalog,
		LLM:         provider,
		Translator:  translator,
		Resolver:    resolver,
		GenrePicker: picker,
		Featured:    NewFeaturedSelector(picker, opts.FeaturedLocalize, opts.Random, log),
		Recommender: NewRecommender(provider, resolver, picker, opts.MaxBackfillAttempts, opts.Random, log),
		Logger:      log,
	}
}

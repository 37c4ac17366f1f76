package services

import (
	"context"
	"fmt"

	"github.com/filmyfim/filmyfim/internal/cache"
	"github.com/filmyfim/filmyfim/internal/constants"
	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/internal/titles"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// GenrePicker samples a well-rated, popular movie from a genre.
type GenrePicker struct {
	catalog      CatalogService
	translator   *Translator
	imageBaseURL string
	rng          Random
	logger       logger.Logger
}

func NewGenrePicker(catalog CatalogService, translator *Translator, imageBaseURL string, rng Random, log logger.Logger) *GenrePicker {
	return &GenrePicker{
		catalog:      catalog,
		translator:   translator,
		imageBaseURL: imageBaseURL,
		rng:          rng,
		logger:       log,
	}
}

// Pick returns a random qualifying movie of genreID whose name is not in exclude, or
// nil if the sampled page has none left. The synopsis is translated only when
// localize is set.
func (p *GenrePicker) Pick(ctx context.Context, genreID int, exclude titles.NameSet, localize bool) (*models.MovieRecord, error) {
	genreName, ok := constants.GenreName(genreID)
	if !ok {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("unknown genre id %d", genreID))
	}

	page := 1 + p.rng.IntN(constants.DiscoverMaxPage)
	results, err := p.catalog.DiscoverMovies(ctx, DiscoverParams{
		GenreID:        genreID,
		SortBy:         constants.DiscoverSortBy,
		MinVoteCount:   constants.DiscoverMinVoteCount,
		MinVoteAverage: constants.DiscoverMinRating,
		Page:           page,
	})
	if err != nil {
		return nil, err
	}

	if len(results) > constants.DiscoverPoolSize {
		results = results[:constants.DiscoverPoolSize]
	}

	available := make([]models.TMDBMovie, 0, len(results))
	for _, movie := range results {
		if movie.Title == "" || exclude.Contains(movie.Title) {
			continue
		}
		available = append(available, movie)
	}
	if len(available) == 0 {
		p.logger.Debugf("[GenrePicker] no unused %s movies on page %d", genreName, page)
		return nil, nil
	}

	movie := available[p.rng.IntN(len(available))]

	descriptionEN := movie.Overview
	if descriptionEN == "" {
		descriptionEN = constants.NoDescription
	}
	description := descriptionEN
	if localize {
		description = p.translator.Translate(ctx, descriptionEN)
	}

	return &models.MovieRecord{
		Name:          movie.Title,
		Score:         models.RoundScore(movie.VoteAverage),
		Description:   description,
		DescriptionEN: descriptionEN,
		Image:         posterURL(p.imageBaseURL, movie.PosterPath),
		Genre:         &genreName,
	}, nil
}

// withPageMemo returns a copy of p that fetches each discover page at most once.
// The copy is meant to live for a single request.
func (p *GenrePicker) withPageMemo() *GenrePicker {
	cp := *p
	cp.catalog = &memoCatalog{
		CatalogService: p.catalog,
		pages:          cache.New[DiscoverParams, []models.TMDBMovie](len(constants.GenreIDs) * constants.DiscoverMaxPage),
	}
	return &cp
}

// memoCatalog remembers successful discover pages. Failures are not stored.
type memoCatalog struct {
	CatalogService
	pages *cache.LRU[DiscoverParams, []models.TMDBMovie]
}

func (m *memoCatalog) DiscoverMovies(ctx context.Context, params DiscoverParams) ([]models.TMDBMovie, error) {
	if movies, ok := m.pages.Get(params); ok {
		return movies, nil
	}
	movies, err := m.CatalogService.DiscoverMovies(ctx, params)
	if err != nil {
		return nil, err
	}
	m.pages.Set(params, movies)
	return movies, nil
}

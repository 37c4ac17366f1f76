package services

import (
	"context"

	"github.com/filmyfim/filmyfim/internal/constants"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/internal/titles"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Resolver maps a free-text title to a catalog-backed MovieRecord.
type Resolver struct {
	catalog      CatalogService
	translator   *Translator
	imageBaseURL string
	logger       logger.Logger
}

func NewResolver(catalog CatalogService, translator *Translator, imageBaseURL string, log logger.Logger) *Resolver {
	return &Resolver{
		catalog:      catalog,
		translator:   translator,
		imageBaseURL: imageBaseURL,
		logger:       log,
	}
}

// Resolve always returns a record. Unknown titles and provider failures produce a
// placeholder carrying the original title.
func (r *Resolver) Resolve(ctx context.Context, title string) models.MovieRecord {
	query := titles.SearchQuery(title)
	if query == "" {
		r.logger.Debugf("[Resolver] nothing searchable in %q", title)
		return r.placeholder(ctx, title, constants.NoInformation)
	}

	results, err := r.catalog.SearchMovies(ctx, query)
	if err != nil {
		r.logger.Errorf("[Resolver] error fetching details for %s: %v", title, err)
		return r.placeholder(ctx, title, constants.ErrorFetchDetail)
	}
	if len(results) == 0 {
		r.logger.Infof("[Resolver] no catalog match for %q", title)
		return r.placeholder(ctx, title, constants.NoInformation)
	}

	movie := results[0]
	details, err := r.catalog.GetMovieDetails(ctx, movie.ID)
	if err != nil {
		r.logger.Errorf("[Resolver] error fetching details for %s (id %d): %v", title, movie.ID, err)
		return r.placeholder(ctx, title, constants.ErrorFetchDetail)
	}

	descriptionEN := movie.Overview
	if descriptionEN == "" {
		descriptionEN = constants.NoDescription
	}

	name := movie.Title
	if name == "" {
		name = title
	}

	return models.MovieRecord{
		Name:          name,
		Score:         models.RoundScore(movie.VoteAverage),
		Description:   r.translator.Translate(ctx, descriptionEN),
		DescriptionEN: descriptionEN,
		Image:         posterURL(r.imageBaseURL, movie.PosterPath),
		IMDBID:        models.OptionalString(details.IMDBId),
	}
}

func (r *Resolver) placeholder(ctx context.Context, title, message string) models.MovieRecord {
	return models.NewPlaceholder(title, message, r.translator.Translate(ctx, message))
}

package services

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/filmyfim/filmyfim/internal/constants"
	"github.com/filmyfim/filmyfim/internal/metrics"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/internal/titles"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// FeaturedSelector picks one movie from each genre of a randomly chosen diverse set.
type FeaturedSelector struct {
	picker   *GenrePicker
	localize bool
	rng      Random
	logger   logger.Logger
}

func NewFeaturedSelector(picker *GenrePicker, localize bool, rng Random, log logger.Logger) *FeaturedSelector {
	return &FeaturedSelector{
		picker:   picker,
		localize: localize,
		rng:      rng,
		logger:   log,
	}
}

// Featured returns up to three movies with distinct names, ordered like the chosen
// genre set. A genre whose pick fails or comes back empty contributes nothing.
//
// All picks are dispatched together, so each sees only the names accepted before
// dispatch; duplicates between concurrent picks are removed after the join.
func (f *FeaturedSelector) Featured(ctx context.Context) ([]models.MovieRecord, error) {
	set := constants.DiverseGenreSets[f.rng.IntN(len(constants.DiverseGenreSets))]
	used := titles.NewNameSet()

	picks := make([]*models.MovieRecord, len(set))
	var wg conc.WaitGroup
	for i, genreName := range set {
		genreID := constants.Genres[genreName]
		exclude := used.Clone()
		wg.Go(func() {
			movie, err := f.picker.Pick(ctx, genreID, exclude, f.localize)
			if err != nil {
				f.logger.Warnf("[Featured] %s pick failed: %v", genreName, err)
				return
			}
			picks[i] = movie
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		f.logger.Errorf("[Featured] genre pick panicked: %v", r.Value)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	movies := make([]models.MovieRecord, 0, constants.FeaturedCount)
	for _, movie := range picks {
		if movie == nil || used.Contains(movie.Name) {
			continue
		}
		movies = append(movies, *movie)
		used.Add(movie.Name)
	}

	metrics.FeaturedReturned.Observe(float64(len(movies)))
	return movies, nil
}

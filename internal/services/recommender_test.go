package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmyfim/filmyfim/internal/constants"
	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/metrics"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/internal/titles"
)

var inceptionPicks = []string{"Interstellar", "The Matrix", "Memento", "Tenet", "The Prestige", "Shutter Island"}

func TestRecommendUsesModelOrder(t *testing.T) {
	catalog := newFakeCatalog(append([]string{"Inception"}, inceptionPicks...)...)
	provider := &fakeLLM{answer: "1. Interstellar\n2. The Matrix (1999)\n3. Memento\n4. Tenet\n5. The Prestige\n6. Shutter Island"}
	c := newTestContainer(catalog, provider, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Inception")

	require.NoError(t, err)
	require.Len(t, movies, constants.RecommendationCount)
	for i, want := range inceptionPicks {
		assert.Equal(t, want, movies[i].Name)
		assert.Equal(t, "About "+want, movies[i].DescriptionEN)
		assert.Equal(t, "fa:About "+want, movies[i].Description)
	}
	assert.Equal(t, 0, catalog.discoverCount())
}

func TestRecommendEmptyModelOutputIsFullyBackfilled(t *testing.T) {
	catalog := newFakeCatalog()
	c := newTestContainer(catalog, &fakeLLM{answer: ""}, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Inception")

	require.NoError(t, err)
	require.Len(t, movies, constants.RecommendationCount)
	names := titles.NewNameSet()
	for _, m := range movies {
		require.NotNil(t, m.Genre)
		assert.False(t, names.Contains(m.Name))
		names.Add(m.Name)
	}
	// every attempt hit the same genre page, which is fetched once per request
	assert.Equal(t, 1, catalog.discoverCount())
}

func TestRecommendDeduplicatesAndBackfills(t *testing.T) {
	catalog := newFakeCatalog("Heat", "Ronin")
	provider := &fakeLLM{answer: "Heat\nheat\nRonin\nHEAT"}
	c := newTestContainer(catalog, provider, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Collateral")

	require.NoError(t, err)
	require.Len(t, movies, constants.RecommendationCount)
	assert.Equal(t, "Heat", movies[0].Name)
	assert.Equal(t, "Ronin", movies[1].Name)
	for _, m := range movies[2:] {
		assert.NotNil(t, m.Genre)
	}
}

func TestRecommendKeepsPlaceholders(t *testing.T) {
	catalog := newFakeCatalog("Heat")
	c := newTestContainer(catalog, &fakeLLM{answer: "Heat\nA Film Nobody Made"}, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Collateral")

	require.NoError(t, err)
	require.Len(t, movies, constants.RecommendationCount)
	assert.Equal(t, "A Film Nobody Made", movies[1].Name)
	assert.Equal(t, constants.NoInformation, movies[1].DescriptionEN)
}

func TestRecommendBackfillIsBounded(t *testing.T) {
	catalog := newFakeCatalog("Heat")
	catalog.discover = func(p DiscoverParams) []models.TMDBMovie { return nil }
	c := newTestContainer(catalog, &fakeLLM{answer: "Heat"}, fixedRandom{})
	empty := metrics.BackfillAttempts.WithLabelValues("empty")
	before := testutil.ToFloat64(empty)

	movies, err := c.Recommender.Recommend(context.Background(), "Collateral")

	require.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, 10.0, testutil.ToFloat64(empty)-before)
	assert.Equal(t, 1, catalog.discoverCount())
}

func TestRecommendBackfillErrorsConsumeAttempts(t *testing.T) {
	catalog := newFakeCatalog()
	for _, id := range constants.GenreIDs {
		catalog.discoverErr[id] = errUpstream
	}
	c := newTestContainer(catalog, &fakeLLM{answer: ""}, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Collateral")

	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Equal(t, 10, catalog.discoverCount())
}

func TestRecommendNeverReturnsSeed(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.discover = func(p DiscoverParams) []models.TMDBMovie {
		return []models.TMDBMovie{{ID: 1, Title: "Collateral", Overview: "Plot", VoteAverage: 7.5}}
	}
	c := newTestContainer(catalog, &fakeLLM{answer: ""}, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Collateral")

	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestRecommendModelFailure(t *testing.T) {
	c := newTestContainer(newFakeCatalog(), &fakeLLM{completeErr: errUpstream}, fixedRandom{})

	_, err := c.Recommender.Recommend(context.Background(), "Inception")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUpstreamUnavailable))
	assert.ErrorIs(t, err, errUpstream)
}

func TestRecommendRejectsBlankSeed(t *testing.T) {
	c := newTestContainer(newFakeCatalog(), &fakeLLM{}, fixedRandom{})

	_, err := c.Recommender.Recommend(context.Background(), "   ")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest))
}

func TestRecommendRecordsAlwaysCarryEveryField(t *testing.T) {
	noisy := "Similar movies:\n\n1) (2010)\n- ***\n• Heat (1995)\n42. ???\nRecommended: nothing"
	c := newTestContainer(newFakeCatalog("Heat"), &fakeLLM{answer: noisy}, fixedRandom{})

	movies, err := c.Recommender.Recommend(context.Background(), "Collateral")
	require.NoError(t, err)

	for _, m := range movies {
		data, err := json.Marshal(m)
		require.NoError(t, err)
		var fields map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Len(t, fields, 7)
		assert.NotEmpty(t, m.Name)
	}
}

func TestRecommendModelTimeout(t *testing.T) {
	c := newTestContainer(newFakeCatalog(), &fakeLLM{completeErr: context.DeadlineExceeded}, fixedRandom{})

	_, err := c.Recommender.Recommend(context.Background(), "Inception")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTimeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// fakeCatalog answers searches from a title table and discovers synthetic movies.
type fakeCatalog struct {
	mu          sync.Mutex
	movies      map[string]models.TMDBMovie // keyed by search query
	searchErr   error
	detailsErr  error
	discoverErr map[int]error
	discover    func(p DiscoverParams) []models.TMDBMovie

	searches      []string
	discoverCalls []DiscoverParams
}

func newFakeCatalog(titles ...string) *fakeCatalog {
	c := &fakeCatalog{movies: map[string]models.TMDBMovie{}, discoverErr: map[int]error{}}
	for i, title := range titles {
		c.movies[title] = models.TMDBMovie{
			ID:          100 + i,
			Title:       title,
			Overview:    "About " + title,
			VoteAverage: 8.25,
			PosterPath:  fmt.Sprintf("/poster%d.jpg", i),
		}
	}
	c.discover = distinctDiscover
	return c
}

// distinctDiscover returns a full page of movies unique to the genre and page.
func distinctDiscover(p DiscoverParams) []models.TMDBMovie {
	out := make([]models.TMDBMovie, 0, 20)
	for i := 0; i < 20; i++ {
		out = append(out, models.TMDBMovie{
			ID:          p.GenreID*1000 + p.Page*100 + i,
			Title:       fmt.Sprintf("G%d-P%d-%d", p.GenreID, p.Page, i),
			Overview:    "Plot",
			VoteAverage: 7.66,
			PosterPath:  "/d.jpg",
		})
	}
	return out
}

func (c *fakeCatalog) SearchMovies(ctx context.Context, query string) ([]models.TMDBMovie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searches = append(c.searches, query)
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	if m, ok := c.movies[query]; ok {
		return []models.TMDBMovie{m}, nil
	}
	return nil, nil
}

func (c *fakeCatalog) GetMovieDetails(ctx context.Context, id int) (*models.TMDBMovieDetails, error) {
	if c.detailsErr != nil {
		return nil, c.detailsErr
	}
	return &models.TMDBMovieDetails{ID: id, IMDBId: fmt.Sprintf("tt%07d", id)}, nil
}

func (c *fakeCatalog) DiscoverMovies(ctx context.Context, p DiscoverParams) ([]models.TMDBMovie, error) {
	c.mu.Lock()
	c.discoverCalls = append(c.discoverCalls, p)
	err := c.discoverErr[p.GenreID]
	discover := c.discover
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return discover(p), nil
}

func (c *fakeCatalog) discoverCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.discoverCalls)
}

// fakeLLM returns a canned recommendation answer and marks translations with "fa:".
type fakeLLM struct {
	mu           sync.Mutex
	answer       string
	completeErr  error
	translateErr error
	translations int
}

const translationMarker = "professional film translator"

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.Contains(prompt, translationMarker) {
		f.translations++
		if f.translateErr != nil {
			return "", f.translateErr
		}
		idx := strings.LastIndex(prompt, "Text: ")
		return "fa:" + prompt[idx+len("Text: "):], nil
	}
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return f.answer, nil
}

func (f *fakeLLM) translationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translations
}

// fixedRandom always returns the same index (clamped to n).
type fixedRandom struct{ v int }

func (r fixedRandom) IntN(n int) int {
	if r.v >= n {
		return n - 1
	}
	return r.v
}

var errUpstream = errors.New("upstream down")

func newTestContainer(catalog CatalogService, provider *fakeLLM, rng Random) *Container {
	return NewContainer(catalog, provider, Options{
		TargetLanguage:      "Persian",
		ImageBaseURL:        "https://img.test/w500",
		MaxBackfillAttempts: 10,
		FeaturedLocalize:    true,
		Random:              rng,
	}, logger.NewNop())
}

package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/filmyfim/filmyfim/internal/constants"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/pkg/httputil"
	"github.com/filmyfim/filmyfim/pkg/logger"
	"github.com/filmyfim/filmyfim/pkg/ratelimiter"
	"github.com/filmyfim/filmyfim/pkg/security"
)

// TMDB is the movie catalog client. It is safe for concurrent use.
type TMDB struct {
	apiKey      string
	bearer      bool
	baseURL     string
	rateLimiter ratelimiter.RateLimiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
	httpClient  *http.Client
	logger      logger.Logger
	validator   *security.APIKeyValidator
}

// TMDBOptions configures the catalog client. Zero values use the package defaults.
type TMDBOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	RateLimit  int64
	RateBurst  int64
}

func NewTMDB(apiKey string, opts TMDBOptions, log logger.Logger) *TMDB {
	validator := security.NewAPIKeyValidator()
	sanitizedKey := validator.SanitizeAPIKey(apiKey)

	if opts.BaseURL == "" {
		opts.BaseURL = constants.TMDBBaseURL
	}
	if opts.HTTPClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = constants.TMDBTimeout
		}
		opts.HTTPClient = httputil.NewHTTPClient(timeout)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = constants.TMDBRateLimit
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = constants.TMDBRateBurst
	}

	t := &TMDB{
		apiKey:      sanitizedKey,
		bearer:      validator.IsValidBearerToken(sanitizedKey),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		rateLimiter: ratelimiter.NewTokenBucket(opts.RateBurst, opts.RateLimit),
		httpClient:  opts.HTTPClient,
		logger:      log,
		validator:   validator,
	}
	t.breaker = newBreaker("tmdb", log)

	if sanitizedKey != "" && !t.bearer && !validator.IsValidTMDBKey(sanitizedKey) {
		log.Warnf("[TMDB] API key has an unexpected format (key: %s)", validator.MaskAPIKey(sanitizedKey))
	}
	return t
}

// SearchMovies returns the ranked /search/movie results for query.
func (t *TMDB) SearchMovies(ctx context.Context, query string) ([]models.TMDBMovie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", constants.TMDBLanguage)
	params.Set("include_adult", "false")
	params.Set("page", "1")

	t.logger.Debugf("[TMDB] searching for '%s'", query)

	var resp models.TMDBMovieResponse
	if err := t.getJSON(ctx, "search", "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetMovieDetails fetches /movie/{id}, which carries the IMDb id.
func (t *TMDB) GetMovieDetails(ctx context.Context, id int) (*models.TMDBMovieDetails, error) {
	params := url.Values{}
	params.Set("language", constants.TMDBLanguage)

	var details models.TMDBMovieDetails
	if err := t.getJSON(ctx, "details", "/movie/"+strconv.Itoa(id), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// DiscoverParams filters a /discover/movie query.
type DiscoverParams struct {
	GenreID        int
	SortBy         string
	MinVoteCount   int
	MinVoteAverage float64
	Page           int
}

// DiscoverMovies returns one page of /discover/movie results.
func (t *TMDB) DiscoverMovies(ctx context.Context, p DiscoverParams) ([]models.TMDBMovie, error) {
	params := url.Values{}
	params.Set("language", constants.TMDBLanguage)
	params.Set("include_adult", "false")
	if p.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(p.GenreID))
	}
	if p.SortBy != "" {
		params.Set("sort_by", p.SortBy)
	}
	if p.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(p.MinVoteCount))
	}
	if p.MinVoteAverage > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(p.MinVoteAverage, 'f', 1, 64))
	}
	if p.Page < 1 {
		p.Page = 1
	}
	params.Set("page", strconv.Itoa(p.Page))

	t.logger.Debugf("[TMDB] discovering genre %d page %d", p.GenreID, p.Page)

	var resp models.TMDBMovieResponse
	if err := t.getJSON(ctx, "discover", "/discover/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

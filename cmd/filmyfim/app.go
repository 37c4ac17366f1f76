package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/filmyfim/filmyfim/internal/config"
	"github.com/filmyfim/filmyfim/internal/constants"
	"github.com/filmyfim/filmyfim/internal/handlers"
	"github.com/filmyfim/filmyfim/internal/llm"
	"github.com/filmyfim/filmyfim/internal/middleware"
	"github.com/filmyfim/filmyfim/internal/services"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// app bundles the configured services for one process.
type app struct {
	cfg      *config.Config
	logger   logger.Logger
	provider llm.Provider
	services *services.Container
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithOptions(cfg.LoggerOptions())

	provider, err := llm.New(ctx, cfg.LLMClientConfig(), log)
	if err != nil {
		return nil, err
	}

	tmdb := services.NewTMDB(cfg.TMDB.APIKey, services.TMDBOptions{
		BaseURL:   cfg.TMDB.BaseURL,
		Timeout:   cfg.TMDB.Timeout,
		RateLimit: constants.TMDBRateLimit,
		RateBurst: constants.TMDBRateBurst,
	}, log)

	container := services.NewContainer(tmdb, provider, services.Options{
		TargetLanguage:      cfg.Recommend.TargetLanguage,
		ImageBaseURL:        cfg.TMDB.ImageBaseURL,
		MaxBackfillAttempts: cfg.Recommend.MaxBackfillAttempts,
		FeaturedLocalize:    cfg.Recommend.FeaturedLocalize,
	}, log)

	log.Infof("[App] services initialized (llm=%s, language=%s)", provider.Name(), container.Translator.Language())

	return &app{
		cfg:      cfg,
		logger:   log,
		provider: provider,
		services: container,
	}, nil
}

func (a *app) router() *gin.Engine {
	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.CORS(a.cfg.Server.CORSOrigins))
	r.Use(middleware.Gzip(a.logger))

	handlers.New(a.services.Recommender, a.services.Featured, a.logger).RegisterRoutes(r)
	return r
}

func (a *app) close() {
	if err := llm.Close(a.provider); err != nil {
		a.logger.Warnf("[App] failed to close LLM client: %v", err)
	}
}

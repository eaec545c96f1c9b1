package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/analyze"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/keywords"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/llm"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/llm/gemini"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/match"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/sections"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/config"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/server"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/storage/db"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/telemetry"
)

// App holds the wired dependencies for the API process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client

	JobsRepo       jobs.Repo
	JobsService    *jobs.Service
	Scorer         *match.Scorer
	AnalyzeService *analyze.Service

	JobsHandler    *jobs.Handler
	AnalyzeHandler *analyze.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	app.JobsRepo = buildJobsRepo(ctx, app)
	app.JobsService = &jobs.Service{Repo: app.JobsRepo}

	remote, err := buildRemoteScorer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Scorer = &match.Scorer{Remote: remote}

	app.AnalyzeService = &analyze.Service{
		Parser:   sections.NewParser(sections.DefaultConfig()),
		Keywords: keywords.NewExtractor(keywords.DefaultDictionary()),
		Jobs:     app.JobsService,
		Scorer:   app.Scorer,
	}

	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.AnalyzeHandler = analyze.NewHandler(app.AnalyzeService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		JobsHandler:    app.JobsHandler,
		AnalyzeHandler: app.AnalyzeHandler,
	})

	return app, nil
}

// Close releases pooled resources. Safe to call on a partially built App.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("DATABASE_URL empty, serving jobs from file", nil)
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("database connect failed, serving jobs from file", map[string]any{
				"error": err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			telemetry.Warn("migrations failed, serving jobs from file", map[string]any{
				"error": err.Error(),
			})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildJobsRepo(ctx context.Context, app *App) jobs.Repo {
	var repo jobs.Repo
	if app.DB != nil {
		repo = &jobs.PGRepo{DB: app.DB}
	} else {
		repo = &jobs.FileRepo{Path: app.Config.JobsFile}
	}

	if strings.TrimSpace(app.Config.RedisURL) == "" {
		return repo
	}
	opts, err := redis.ParseURL(app.Config.RedisURL)
	if err != nil {
		telemetry.Warn("invalid REDIS_URL, caching disabled", map[string]any{"error": err.Error()})
		return repo
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		telemetry.Warn("redis unreachable, caching disabled", map[string]any{"error": err.Error()})
		client.Close()
		return repo
	}
	app.Redis = client
	return &jobs.CacheRepo{Client: client, Next: repo}
}

func buildRemoteScorer(ctx context.Context, cfg config.Config) (llm.Scorer, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		telemetry.Info("GEMINI_API_KEY empty, using local match scoring", nil)
		return llm.Disabled{}, nil
	}
	client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("gemini client init failed, using local match scoring", map[string]any{
				"error": err.Error(),
			})
			return llm.Disabled{}, nil
		}
		return nil, err
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

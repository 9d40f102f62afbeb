package app

import (
	"context"
	"fmt"
	"log/slog"

	"VideoClassifier/internal/classify"
	"VideoClassifier/internal/config"
	"VideoClassifier/internal/infrastructure/channels"
	"VideoClassifier/internal/infrastructure/gcs"
	"VideoClassifier/internal/infrastructure/llm"
	"VideoClassifier/internal/infrastructure/storage"
	"VideoClassifier/internal/infrastructure/telegram"
	"VideoClassifier/internal/infrastructure/youtube"
	"VideoClassifier/internal/logging"
	"VideoClassifier/internal/ports"
	"VideoClassifier/internal/taxonomy"
	"VideoClassifier/internal/usecase"
)

// Application wires configuration into one batch pipeline run.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run wires all adapters and executes a single batch. Configuration and
// credential failures abort here; per-channel and per-record failures are
// absorbed downstream.
func (a *Application) Run(ctx context.Context) error {
	cfg := a.cfg

	if cfg.YouTube.APIKey == "" {
		return fmt.Errorf("youtube api key is not configured")
	}
	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is not configured")
	}
	if cfg.Storage.CredentialsJSON == "" {
		return fmt.Errorf("storage credentials are not configured")
	}

	trails, err := taxonomy.Load(cfg.Classify.TrailsPath)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}

	uploader, err := gcs.NewUploader(ctx, []byte(cfg.Storage.CredentialsJSON), cfg.Storage.Bucket)
	if err != nil {
		return fmt.Errorf("storage uploader: %w", err)
	}
	defer uploader.Close()

	var repository ports.ProcessedRepository
	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("dedup database: %w", err)
		}
		defer db.Close()
		repository = storage.NewPostgresRepository(db)
	}

	engine := classify.NewEngine(classify.EngineDeps{
		Generator:     llm.NewGeminiClient(cfg.Gemini),
		Trails:        trails,
		SynopsisPacer: classify.NewIntervalPacer(config.StageDelay(cfg.Classify.SynopsisDelay)),
		ToolPacer:     classify.NewIntervalPacer(config.StageDelay(cfg.Classify.ToolDelay)),
		TopicPacer:    classify.NewIntervalPacer(config.StageDelay(cfg.Classify.TopicDelay)),
		Logger:        a.logger.With("component", "classify"),
	})

	var notifier ports.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Channels:   channels.NewCSVLoader(cfg.Channels.CSVPath),
		Source:     youtube.NewClient(cfg.YouTube.APIKey, nil),
		Engine:     engine,
		Repository: repository,
		Blobs:      uploader,
		Notifier:   notifier,
		Logger:     a.logger.With("component", "pipeline"),
	})

	return pipeline.Run(ctx, usecase.RunConfig{
		Start:        cfg.Channels.Start,
		End:          cfg.Channels.End,
		MinDate:      cfg.Filters.MinDateTime(),
		MinLikes:     cfg.Filters.MinLikes,
		ObjectPrefix: cfg.Storage.ObjectPrefix,
	})
}

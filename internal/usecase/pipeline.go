package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/filter"
	"VideoClassifier/internal/ports"
)

// classifier is the three-stage engine surface the pipeline drives.
type classifier interface {
	Contextualize(ctx context.Context, records []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error)
	ClassifyTools(ctx context.Context, records []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error)
	ClassifyTopics(ctx context.Context, records []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error)
}

// RunConfig is the explicit run configuration the orchestrator owns: which
// channel slice to process and the narrowing thresholds.
type RunConfig struct {
	Start        int
	End          int
	MinDate      time.Time
	MinLikes     int64
	ObjectPrefix string
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Channels   ports.ChannelLoader
	Source     ports.VideoSource
	Engine     classifier
	Repository ports.ProcessedRepository
	Blobs      ports.BlobStore
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// Pipeline implements the harvest-filter-classify-persist workflow.
type Pipeline struct {
	channels   ports.ChannelLoader
	source     ports.VideoSource
	engine     classifier
	repository ports.ProcessedRepository
	blobs      ports.BlobStore
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		channels:   deps.Channels,
		source:     deps.Source,
		engine:     deps.Engine,
		repository: deps.Repository,
		blobs:      deps.Blobs,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
	}
}

// Run executes one full batch over the configured channel slice. A channel
// whose ingestion fails contributes zero records; an empty post-filter
// working set still persists a header-only CSV.
func (p *Pipeline) Run(ctx context.Context, cfg RunConfig) error {
	channels, err := p.channels.LoadRange(cfg.Start, cfg.End)
	if err != nil {
		return fmt.Errorf("load channels: %w", err)
	}
	p.info("channels loaded", "count", len(channels), "start", cfg.Start, "end", cfg.End)

	working := p.harvest(ctx, channels)
	collected := len(working)
	p.info("videos collected", "count", collected)

	working = filter.ByMinDate(working, cfg.MinDate)
	p.info("after date filter", "count", len(working), "min_date", cfg.MinDate.Format("2006-01-02"))

	working = filter.ByMinLikes(working, cfg.MinLikes)
	p.info("after engagement filter", "count", len(working), "min_likes", cfg.MinLikes)

	working, err = p.dropAlreadyClassified(ctx, working)
	if err != nil {
		return err
	}

	working, err = p.engine.Contextualize(ctx, working)
	if err != nil {
		return fmt.Errorf("contextualize: %w", err)
	}

	working = filter.WithValidSynopsis(working)
	p.info("after synopsis filter", "count", len(working))

	working, err = p.engine.ClassifyTools(ctx, working)
	if err != nil {
		return fmt.Errorf("classify tools: %w", err)
	}

	working, err = p.engine.ClassifyTopics(ctx, working)
	if err != nil {
		return fmt.Errorf("classify topics: %w", err)
	}

	final := filter.WithResolvedTopic(working)
	p.info("final labeled set", "count", len(final))

	data, err := buildCSV(final)
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}

	objectName := fmt.Sprintf("%s_%d_%d.csv", cfg.ObjectPrefix, cfg.Start, cfg.End)
	if err := p.blobs.Upload(ctx, objectName, "text/csv", data); err != nil {
		return fmt.Errorf("upload %s: %w", objectName, err)
	}
	p.info("result uploaded", "object", objectName, "records", len(final))

	if p.repository != nil {
		if err := p.repository.SaveClassified(ctx, final); err != nil {
			p.info("save classified failed", "error", err)
		}
	}

	if p.notifier != nil {
		summary := fmt.Sprintf("video classification run [%d:%d]: %d collected, %d labeled, uploaded %s",
			cfg.Start, cfg.End, collected, len(final), objectName)
		if err := p.notifier.PublishSummary(ctx, summary); err != nil {
			p.info("summary notification failed", "error", err)
		}
	}

	return nil
}

// harvest lists and fetches each channel's videos. A request-level failure
// aborts only that channel, never the run.
func (p *Pipeline) harvest(ctx context.Context, channels []domain.Channel) []domain.ClassifiedVideo {
	var working []domain.ClassifiedVideo

	for i, ch := range channels {
		p.info("processing channel", "index", i+1, "total", len(channels), "channel", ch.Title)

		ids, err := p.source.ListVideoIDs(ctx, ch.ID)
		if err != nil {
			p.info("channel listing failed, skipping", "channel", ch.Title, "error", err)
			continue
		}
		if len(ids) == 0 {
			continue
		}

		records, err := p.source.FetchMetadata(ctx, ids)
		if err != nil {
			p.info("channel metadata fetch failed, skipping", "channel", ch.Title, "error", err)
			continue
		}

		for _, video := range records {
			working = append(working, domain.ClassifiedVideo{Video: video})
		}
		p.info("channel harvested", "channel", ch.Title, "videos", len(records))
	}

	return working
}

func (p *Pipeline) dropAlreadyClassified(ctx context.Context, working []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error) {
	if p.repository == nil || len(working) == 0 {
		return working, nil
	}

	ids := make([]string, len(working))
	for i, rec := range working {
		ids[i] = rec.Video.VideoID
	}

	skip, err := p.repository.AlreadyClassified(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load classified ids: %w", err)
	}

	working = filter.WithoutIDs(working, skip)
	p.info("after dedup filter", "count", len(working))
	return working, nil
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

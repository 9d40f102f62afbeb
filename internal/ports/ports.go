package ports

import (
	"context"

	"VideoClassifier/internal/domain"
)

// ChannelLoader reads the curated channel list and slices it by row index.
type ChannelLoader interface {
	LoadRange(start, end int) ([]domain.Channel, error)
}

// VideoSource pulls video identifiers and metadata from the listing API.
type VideoSource interface {
	ListVideoIDs(ctx context.Context, channelID string) ([]string, error)
	FetchMetadata(ctx context.Context, videoIDs []string) ([]domain.VideoRecord, error)
}

// TextGenerator sends one prompt to the inference service and returns the raw
// response text. Failures are transient from the pipeline's point of view.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TrailStore exposes the taxonomy loaded once per run.
type TrailStore interface {
	Trails() []domain.Trail
}

// BlobStore durably persists a named blob.
type BlobStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) error
}

// ProcessedRepository remembers video ids classified in previous runs so
// reruns can skip paid inference calls.
type ProcessedRepository interface {
	AlreadyClassified(ctx context.Context, ids []string) (map[string]bool, error)
	SaveClassified(ctx context.Context, records []domain.ClassifiedVideo) error
}

// Notifier pushes the end-of-run summary to an operator channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// Pacer enforces the mandatory inter-call delay between inference requests.
type Pacer interface {
	Wait(ctx context.Context) error
}

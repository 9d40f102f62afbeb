// Package classify implements the three-stage prompting chain that turns
// harvested video metadata into trail-topic labels.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/ports"
	"VideoClassifier/internal/taxonomy"
)

const progressEvery = 10

// EngineDeps wires the inference boundary, taxonomy, and per-stage pacing.
type EngineDeps struct {
	Generator     ports.TextGenerator
	Trails        ports.TrailStore
	SynopsisPacer ports.Pacer
	ToolPacer     ports.Pacer
	TopicPacer    ports.Pacer
	Logger        *slog.Logger
}

// Engine runs the classification stages one record at a time, strictly
// sequentially. The inference provider's rate limits rule out fan-out, so a
// pacer is waited on after every call, whether it succeeded or failed.
type Engine struct {
	generator     ports.TextGenerator
	trails        ports.TrailStore
	synopsisPacer ports.Pacer
	toolPacer     ports.Pacer
	topicPacer    ports.Pacer
	logger        *slog.Logger
}

// NewEngine constructs the classification engine.
func NewEngine(deps EngineDeps) *Engine {
	return &Engine{
		generator:     deps.Generator,
		trails:        deps.Trails,
		synopsisPacer: deps.SynopsisPacer,
		toolPacer:     deps.ToolPacer,
		topicPacer:    deps.TopicPacer,
		logger:        deps.Logger,
	}
}

// Contextualize runs stage 1: title, description, and channel name are
// distilled into a purified technical synopsis, or the non-technical sentinel.
func (e *Engine) Contextualize(ctx context.Context, records []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error) {
	out := make([]domain.ClassifiedVideo, len(records))
	for i, rec := range records {
		raw, err := e.generator.Generate(ctx, SynopsisPrompt(rec.Video))
		switch {
		case err != nil:
			e.log("synopsis call failed", "video_id", rec.Video.VideoID, "error", err)
			rec.Classification.SynopsisStatus = domain.StatusTransientError
		case isNonTechnical(raw):
			rec.Classification.Synopsis = NonTechnicalSentinel
			rec.Classification.SynopsisStatus = domain.StatusInvalid
		default:
			rec.Classification.Synopsis = strings.TrimSpace(raw)
			rec.Classification.SynopsisStatus = domain.StatusValid
		}
		out[i] = rec

		e.progress("contextualize", i+1, len(records))
		if err := e.synopsisPacer.Wait(ctx); err != nil {
			return out[:i+1], err
		}
	}
	return out, nil
}

// ClassifyTools runs stage 2: each synopsis is classified against the fixed
// accepted-tool list. The raw response is kept as-is; the resolver parses it
// defensively in stage 3.
func (e *Engine) ClassifyTools(ctx context.Context, records []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error) {
	out := make([]domain.ClassifiedVideo, len(records))
	for i, rec := range records {
		raw, err := e.generator.Generate(ctx, ToolPrompt(rec.Classification.Synopsis))
		if err != nil {
			e.log("tool call failed", "video_id", rec.Video.VideoID, "error", err)
			rec.Classification.ToolStatus = domain.StatusTransientError
		} else {
			rec.Classification.RawToolPayload = strings.TrimSpace(raw)
			rec.Classification.ToolStatus = domain.StatusValid
		}
		out[i] = rec

		e.progress("classify tool", i+1, len(records))
		if err := e.toolPacer.Wait(ctx); err != nil {
			return out[:i+1], err
		}
	}
	return out, nil
}

// ClassifyTopics runs stage 3: the tool payload is resolved to a trail and the
// model picks one verbatim topic from it. Records without a resolvable trail
// skip the inference call entirely.
func (e *Engine) ClassifyTopics(ctx context.Context, records []domain.ClassifiedVideo) ([]domain.ClassifiedVideo, error) {
	trails := e.trails.Trails()

	out := make([]domain.ClassifiedVideo, len(records))
	for i, rec := range records {
		trail, ok := taxonomy.ResolveTrail(rec.Classification.RawToolPayload, trails)
		if !ok {
			e.log("no trail for payload", "video_id", rec.Video.VideoID)
			rec.Classification.TopicStatus = domain.StatusNoTrail
			out[i] = rec
			continue
		}

		raw, err := e.generator.Generate(ctx, TopicPrompt(rec.Classification.Synopsis, trail.Tool, trail.Topics))
		if err != nil {
			e.log("topic call failed", "video_id", rec.Video.VideoID, "error", err)
			rec.Classification.TopicStatus = domain.StatusTransientError
		} else {
			rec.Classification.Topic, rec.Classification.TopicStatus = matchTopic(raw, trail.Topics)
		}
		out[i] = rec

		e.progress("classify topic", i+1, len(records))
		if err := e.topicPacer.Wait(ctx); err != nil {
			return out[:i+1], err
		}
	}
	return out, nil
}

// isNonTechnical detects the stage-1 refusal sentence, tolerating the quoting
// the model sometimes adds around it.
func isNonTechnical(raw string) bool {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"`)
	return strings.TrimSpace(cleaned) == NonTechnicalSentinel
}

// matchTopic maps the raw stage-3 response to a verbatim trail topic. Answers
// outside the supplied list violate the prompt contract and count as invalid.
func matchTopic(raw string, topics []string) (string, domain.StageStatus) {
	answer := strings.TrimSpace(raw)
	answer = strings.Trim(answer, `"`)
	answer = strings.TrimSpace(answer)

	if strings.EqualFold(answer, InvalidSentinel) {
		return "", domain.StatusInvalid
	}
	for _, topic := range topics {
		if answer == topic {
			return topic, domain.StatusValid
		}
	}
	return "", domain.StatusInvalid
}

func (e *Engine) progress(stage string, done, total int) {
	if done%progressEvery == 0 || done == total {
		e.log("stage progress", "stage", stage, "done", done, "total", total)
	}
}

func (e *Engine) log(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

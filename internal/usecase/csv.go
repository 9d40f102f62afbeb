package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"VideoClassifier/internal/classify"
	"VideoClassifier/internal/domain"
)

// Portuguese sentinel strings used in the exported dataset. They exist only at
// this serialization boundary; the pipeline itself carries typed statuses.
const (
	errorSentinel   = "erro"
	noTrailSentinel = "sem_trilha"
)

var csvHeader = []string{
	"video_id", "url", "title", "description", "channel_id", "channel_name",
	"published_at", "thumbnail", "viewCount", "likeCount", "commentCount",
	"defaultAudioLanguage", "duration", "tags",
	"contexto", "classificacao", "topico_trilha",
}

// buildCSV serializes the labeled records as a semicolon-delimited CSV,
// header included even for an empty set.
func buildCSV(records []domain.ClassifiedVideo) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Video.VideoID,
			rec.Video.URL,
			rec.Video.Title,
			rec.Video.Description,
			rec.Video.ChannelID,
			rec.Video.ChannelName,
			rec.Video.PublishedAt.UTC().Format(time.RFC3339),
			rec.Video.ThumbnailURL,
			strconv.FormatInt(rec.Video.ViewCount, 10),
			strconv.FormatInt(rec.Video.LikeCount, 10),
			strconv.FormatInt(rec.Video.CommentCount, 10),
			rec.Video.DefaultAudioLanguage,
			rec.Video.Duration,
			strings.Join(rec.Video.Tags, ","),
			synopsisColumn(rec.Classification),
			toolColumn(rec.Classification),
			topicColumn(rec.Classification),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %s: %w", rec.Video.VideoID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func synopsisColumn(c domain.Classification) string {
	switch c.SynopsisStatus {
	case domain.StatusTransientError:
		return errorSentinel
	case domain.StatusInvalid:
		return classify.NonTechnicalSentinel
	default:
		return c.Synopsis
	}
}

func toolColumn(c domain.Classification) string {
	if c.ToolStatus == domain.StatusTransientError {
		return errorSentinel
	}
	return c.RawToolPayload
}

func topicColumn(c domain.Classification) string {
	switch c.TopicStatus {
	case domain.StatusTransientError:
		return errorSentinel
	case domain.StatusNoTrail:
		return noTrailSentinel
	case domain.StatusInvalid:
		return classify.InvalidSentinel
	default:
		return c.Topic
	}
}

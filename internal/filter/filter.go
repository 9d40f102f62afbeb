// Package filter holds the pure narrowing passes applied to the working set.
// Every function is order-preserving, leaves surviving records untouched, and
// is safe to apply more than once.
package filter

import (
	"time"

	"VideoClassifier/internal/domain"
)

// ByMinDate keeps records published on or after the cutoff (inclusive).
func ByMinDate(records []domain.ClassifiedVideo, minDate time.Time) []domain.ClassifiedVideo {
	kept := make([]domain.ClassifiedVideo, 0, len(records))
	for _, r := range records {
		if !r.Video.PublishedAt.Before(minDate) {
			kept = append(kept, r)
		}
	}
	return kept
}

// ByMinLikes keeps records with strictly more likes than the threshold.
func ByMinLikes(records []domain.ClassifiedVideo, threshold int64) []domain.ClassifiedVideo {
	kept := make([]domain.ClassifiedVideo, 0, len(records))
	for _, r := range records {
		if r.Video.LikeCount > threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

// WithValidSynopsis drops records whose contextualization stage did not
// produce a usable technical synopsis. Records that failed transiently are
// kept out as well: without a synopsis the later stages have no input.
func WithValidSynopsis(records []domain.ClassifiedVideo) []domain.ClassifiedVideo {
	kept := make([]domain.ClassifiedVideo, 0, len(records))
	for _, r := range records {
		if r.Classification.SynopsisStatus == domain.StatusValid {
			kept = append(kept, r)
		}
	}
	return kept
}

// WithResolvedTopic keeps only records whose topic stage resolved to a real
// trail topic.
func WithResolvedTopic(records []domain.ClassifiedVideo) []domain.ClassifiedVideo {
	kept := make([]domain.ClassifiedVideo, 0, len(records))
	for _, r := range records {
		if r.Classification.TopicStatus == domain.StatusValid {
			kept = append(kept, r)
		}
	}
	return kept
}

// WithoutIDs drops records whose video id appears in the skip set.
func WithoutIDs(records []domain.ClassifiedVideo, skip map[string]bool) []domain.ClassifiedVideo {
	if len(skip) == 0 {
		return records
	}
	kept := make([]domain.ClassifiedVideo, 0, len(records))
	for _, r := range records {
		if !skip[r.Video.VideoID] {
			kept = append(kept, r)
		}
	}
	return kept
}

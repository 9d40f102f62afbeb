// Package taxonomy loads the technology trails file and resolves tool
// classifications to the topic list of the matching trail.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/ports"
)

// Store keeps the trails loaded once per run.
type Store struct {
	trails []domain.Trail
}

var _ ports.TrailStore = (*Store)(nil)

type trailsFile struct {
	Trails []domain.Trail `json:"trilhas"`
}

// Load reads the taxonomy JSON file.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trails file: %w", err)
	}

	var file trailsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse trails file %s: %w", path, err)
	}

	return &Store{trails: file.Trails}, nil
}

// NewStore builds a store from in-memory trails; used in wiring and tests.
func NewStore(trails []domain.Trail) *Store {
	return &Store{trails: trails}
}

// Trails returns the loaded trails.
func (s *Store) Trails() []domain.Trail {
	return s.trails
}

var (
	fenceOpenExpr  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceCloseExpr = regexp.MustCompile("\\s*```$")
)

// StripFences removes a surrounding Markdown code fence, with optional
// language tag, from a model response.
func StripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpenExpr.ReplaceAllString(cleaned, "")
	cleaned = fenceCloseExpr.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParsePayload defensively parses the raw tool-stage response. The inference
// boundary enforces no schema, so fences are stripped and parse failures are
// reported rather than trusted.
func ParsePayload(raw string) (domain.ToolClassification, bool) {
	var payload domain.ToolClassification
	if err := json.Unmarshal([]byte(StripFences(raw)), &payload); err != nil {
		return domain.ToolClassification{}, false
	}
	return payload, true
}

// Resolve maps a raw tool-stage payload to the topic list of its trail.
// An unparseable payload or a miss on both fields yields an empty list.
func Resolve(rawPayload string, trails []domain.Trail) []string {
	trail, ok := ResolveTrail(rawPayload, trails)
	if !ok {
		return nil
	}
	return trail.Topics
}

// ResolveTrail finds the trail for a raw tool-stage payload. Lookup is by
// case-insensitive exact match on the primary tool first, then on the base
// technology; the model may legitimately classify by base technology when a
// sub-tool carries no trail of its own.
func ResolveTrail(rawPayload string, trails []domain.Trail) (domain.Trail, bool) {
	payload, ok := ParsePayload(rawPayload)
	if !ok {
		return domain.Trail{}, false
	}

	if trail, ok := lookup(payload.PrimaryTool, trails); ok {
		return trail, true
	}
	return lookup(payload.BaseTechnology, trails)
}

func lookup(tool string, trails []domain.Trail) (domain.Trail, bool) {
	if tool == "" {
		return domain.Trail{}, false
	}
	for _, trail := range trails {
		if strings.EqualFold(trail.Tool, tool) {
			return trail, true
		}
	}
	return domain.Trail{}, false
}

package domain

import "time"

// VideoRecord is a core entity describing metadata harvested from the listing API.
type VideoRecord struct {
	VideoID              string
	URL                  string
	Title                string
	Description          string
	ChannelID            string
	ChannelName          string
	PublishedAt          time.Time
	ThumbnailURL         string
	ViewCount            int64
	LikeCount            int64
	CommentCount         int64
	DefaultAudioLanguage string
	Duration             string
	Tags                 []string
}

// StageStatus enumerates the outcome of one classification stage for a record.
type StageStatus string

const (
	StatusValid          StageStatus = "valid"
	StatusInvalid        StageStatus = "invalid"
	StatusTransientError StageStatus = "transient_error"
	StatusNoTrail        StageStatus = "no_trail"
)

// Classification accumulates the fields appended by the three pipeline stages.
// Each stage writes exactly one payload field and its status tag.
type Classification struct {
	Synopsis       string
	SynopsisStatus StageStatus

	RawToolPayload string
	ToolStatus     StageStatus

	Topic       string
	TopicStatus StageStatus
}

// ClassifiedVideo pairs metadata with its classification columns as the record
// flows through the pipeline stages.
type ClassifiedVideo struct {
	Video          VideoRecord
	Classification Classification
}

// ToolClassification is the structured payload expected from the tool stage,
// parsed defensively out of the raw model response.
type ToolClassification struct {
	PrimaryTool    string `json:"ferramenta_principal"`
	BaseTechnology string `json:"tecnologia_base"`
	Confidence     string `json:"confianca"`
	Category       string `json:"categoria"`
}

// Trail is an ordered topic curriculum keyed by one technology name.
type Trail struct {
	Tool   string   `json:"ferramenta"`
	Topics []string `json:"topicos"`
}

// Channel is one row of the curated channel list.
type Channel struct {
	ID    string
	Title string
}

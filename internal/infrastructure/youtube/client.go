// Package youtube wraps the Data API v3 listing and metadata endpoints.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"VideoClassifier/internal/domain"
	"VideoClassifier/internal/ports"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// maxBatchSize is the API hard limit for both playlistItems pages and
	// videos.list id batches.
	maxBatchSize = 50
)

// Client implements ports.VideoSource against the YouTube Data API v3.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ ports.VideoSource = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets a sane timeout default.
func NewClient(apiKey string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: defaultBaseURL, client: client}
}

// PlaylistIDFor converts a UC-prefixed channel id to its uploads playlist id.
// Ids without the prefix pass through unchanged.
func PlaylistIDFor(channelID string) string {
	if strings.HasPrefix(channelID, "UC") {
		return "UU" + channelID[2:]
	}
	return channelID
}

type playlistItemsResp struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// ListVideoIDs pages through the channel's uploads playlist until the API
// stops returning a continuation token.
func (c *Client) ListVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	playlistID := PlaylistIDFor(channelID)

	var videoIDs []string
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "contentDetails")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(maxBatchSize))
		params.Set("key", c.apiKey)
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page playlistItemsResp
		if err := c.get(ctx, "/playlistItems", params, &page); err != nil {
			return nil, fmt.Errorf("list playlist %s: %w", playlistID, err)
		}

		for _, item := range page.Items {
			videoIDs = append(videoIDs, item.ContentDetails.VideoID)
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videoIDs, nil
}

type videosResp struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title                string   `json:"title"`
			Description          string   `json:"description"`
			ChannelID            string   `json:"channelId"`
			ChannelTitle         string   `json:"channelTitle"`
			PublishedAt          string   `json:"publishedAt"`
			DefaultAudioLanguage string   `json:"defaultAudioLanguage"`
			Tags                 []string `json:"tags"`
			Thumbnails           struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// FetchMetadata batches ids into groups of at most 50 and issues one request
// per batch, concatenating results in request order.
func (c *Client) FetchMetadata(ctx context.Context, videoIDs []string) ([]domain.VideoRecord, error) {
	records := make([]domain.VideoRecord, 0, len(videoIDs))

	for start := 0; start < len(videoIDs); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batch := videoIDs[start:end]

		params := url.Values{}
		params.Set("part", "snippet,statistics,contentDetails")
		params.Set("id", strings.Join(batch, ","))
		params.Set("key", c.apiKey)

		var page videosResp
		if err := c.get(ctx, "/videos", params, &page); err != nil {
			return nil, fmt.Errorf("fetch metadata batch at %d: %w", start, err)
		}

		for _, item := range page.Items {
			publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
			records = append(records, domain.VideoRecord{
				VideoID:              item.ID,
				URL:                  "https://www.youtube.com/watch?v=" + item.ID,
				Title:                item.Snippet.Title,
				Description:          item.Snippet.Description,
				ChannelID:            item.Snippet.ChannelID,
				ChannelName:          item.Snippet.ChannelTitle,
				PublishedAt:          publishedAt,
				ThumbnailURL:         item.Snippet.Thumbnails.High.URL,
				ViewCount:            parseCount(item.Statistics.ViewCount),
				LikeCount:            parseCount(item.Statistics.LikeCount),
				CommentCount:         parseCount(item.Statistics.CommentCount),
				DefaultAudioLanguage: item.Snippet.DefaultAudioLanguage,
				Duration:             item.ContentDetails.Duration,
				Tags:                 item.Snippet.Tags,
			})
		}
	}

	return records, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("youtube api %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseCount converts the API's string-typed statistics to integers; absent
// or malformed values count as zero.
func parseCount(value string) int64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

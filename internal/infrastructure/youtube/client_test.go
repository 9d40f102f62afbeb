package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPlaylistIDFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"uploads prefix swapped", "UCabc123", "UUabc123"},
		{"prefix only", "UC", "UU"},
		{"non UC id passes through", "HCabc123", "HCabc123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaylistIDFor(tt.in); got != tt.want {
				t.Fatalf("PlaylistIDFor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestListVideoIDsPaginates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/playlistItems" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("playlistId"); got != "UUchannel" {
			t.Errorf("playlistId = %q, want UUchannel", got)
		}

		switch r.URL.Query().Get("pageToken") {
		case "":
			fmt.Fprint(w, `{"nextPageToken": "page2", "items": [
				{"contentDetails": {"videoId": "v1"}},
				{"contentDetails": {"videoId": "v2"}}]}`)
		case "page2":
			fmt.Fprint(w, `{"items": [{"contentDetails": {"videoId": "v3"}}]}`)
		default:
			t.Errorf("unexpected pageToken %q", r.URL.Query().Get("pageToken"))
		}
	}))
	defer server.Close()

	client := NewClient("test-key", server.Client())
	client.baseURL = server.URL

	ids, err := client.ListVideoIDs(context.Background(), "UCchannel")
	if err != nil {
		t.Fatalf("ListVideoIDs error: %v", err)
	}

	want := []string{"v1", "v2", "v3"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestFetchMetadataBatches(t *testing.T) {
	t.Parallel()

	var batches [][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		ids := strings.Split(r.URL.Query().Get("id"), ",")
		batches = append(batches, ids)

		var items []string
		for _, id := range ids {
			items = append(items, fmt.Sprintf(`{
				"id": %q,
				"snippet": {
					"title": "title %s",
					"channelId": "UCchannel",
					"channelTitle": "Channel",
					"publishedAt": "2024-07-01T12:00:00Z",
					"thumbnails": {"high": {"url": "https://img/%s"}}
				},
				"statistics": {"viewCount": "100", "likeCount": "30", "commentCount": "5"},
				"contentDetails": {"duration": "PT10M"}
			}`, id, id, id))
		}
		fmt.Fprintf(w, `{"items": [%s]}`, strings.Join(items, ","))
	}))
	defer server.Close()

	client := NewClient("test-key", server.Client())
	client.baseURL = server.URL

	const n = 120
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%03d", i)
	}

	records, err := client.FetchMetadata(context.Background(), ids)
	if err != nil {
		t.Fatalf("FetchMetadata error: %v", err)
	}

	// ceil(120/50) = 3 batch calls of sizes 50, 50, 20.
	if len(batches) != 3 {
		t.Fatalf("issued %d batch calls, want 3", len(batches))
	}
	if len(batches[0]) != 50 || len(batches[1]) != 50 || len(batches[2]) != 20 {
		t.Fatalf("unexpected batch sizes: %d, %d, %d", len(batches[0]), len(batches[1]), len(batches[2]))
	}

	if len(records) != n {
		t.Fatalf("got %d records, want %d", len(records), n)
	}
	for i, rec := range records {
		if rec.VideoID != ids[i] {
			t.Fatalf("records[%d].VideoID = %q, want %q (order not preserved)", i, rec.VideoID, ids[i])
		}
	}

	first := records[0]
	if first.URL != "https://www.youtube.com/watch?v=vid000" {
		t.Fatalf("unexpected url: %s", first.URL)
	}
	if first.ViewCount != 100 || first.LikeCount != 30 || first.CommentCount != 5 {
		t.Fatalf("counts not parsed: %+v", first)
	}
	if first.Duration != "PT10M" {
		t.Fatalf("unexpected duration: %s", first.Duration)
	}
}

func TestFetchMetadataEmptyInput(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key", nil)
	records, err := client.FetchMetadata(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchMetadata error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestListVideoIDsAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("test-key", server.Client())
	client.baseURL = server.URL

	if _, err := client.ListVideoIDs(context.Background(), "UCchannel"); err == nil {
		t.Fatal("expected error on API failure")
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	if got := parseCount(""); got != 0 {
		t.Fatalf("parseCount(\"\") = %d, want 0", got)
	}
	if got := parseCount("garbage"); got != 0 {
		t.Fatalf("parseCount(garbage) = %d, want 0", got)
	}
	if got := parseCount("12345"); got != 12345 {
		t.Fatalf("parseCount(12345) = %d", got)
	}
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

// TestTranscribeNormalizesShapes verifies both known response shapes map to
// the same result struct.
func TestTranscribeNormalizesShapes(t *testing.T) {
	bodies := map[string]string{
		"plain":  `{"text": "supply 40 bags cement", "language": "hi", "provider": "sarvam"}`,
		"legacy": `{"transcript": "supply 40 bags cement", "detected_language": "hi"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/transcribe/" {
					t.Errorf("Expected /transcribe/, got %s", r.URL.Path)
				}
				w.Write([]byte(body))
			}))
			defer server.Close()

			client, _ := newTestClient(server.URL, nil, 0)
			result, err := client.Transcribe(context.Background(), "note.m4a", strings.NewReader("audio"))
			if err != nil {
				t.Fatalf("Transcribe failed: %v", err)
			}
			if result.Text != "supply 40 bags cement" {
				t.Errorf("Expected normalized text, got %q", result.Text)
			}
			if result.Language != "hi" {
				t.Errorf("Expected normalized language, got %q", result.Language)
			}
		})
	}
}

// TestProjectGetNotFound verifies a missing project maps to ErrNotFound.
func TestProjectGetNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Project not found"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, nil, 3)
	_, err := client.ProjectGet(context.Background(), 99)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestProjectListUnwrapsEnvelope verifies the {"projects": [...]} envelope is
// unwrapped.
func TestProjectListUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects": [{"id": 1, "name": "Metro Line 3"}, {"id": 2, "name": "Ring Road"}]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, nil, 0)
	projects, err := client.ProjectList(context.Background())
	if err != nil {
		t.Fatalf("ProjectList failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	if projects[1].Name != "Ring Road" {
		t.Errorf("Expected second project name, got %q", projects[1].Name)
	}
}

// TestAwardScoreOnly verifies the score-only endpoint unwraps ranked bids.
func TestAwardScoreOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/awards/score-only" {
			t.Errorf("Expected /awards/score-only, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"ranked_bids": [{"bid_id": "bid-7", "score": 87.5}]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, nil, 0)
	bids := []AwardBid{{ID: "bid-7", SupplierName: "Sharma Traders", Price: 41000}}
	ranked, err := client.AwardScoreOnly(context.Background(), "supply cement", bids, AwardCriteria{})
	if err != nil {
		t.Fatalf("AwardScoreOnly failed: %v", err)
	}
	if len(ranked) != 1 || ranked[0].BidID != "bid-7" {
		t.Fatalf("Expected ranked bid, got %+v", ranked)
	}
}

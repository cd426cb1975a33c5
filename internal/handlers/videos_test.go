package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipstream/backend/internal/models"
)

func TestVideoHandlerList(t *testing.T) {
	store := &stubVideoStore{published: []models.Video{
		{ID: "video-2", Title: "Newest clip", IsPublished: true},
		{ID: "video-1", Title: "Older clip", IsPublished: true},
	}}
	handler := VideoHandler{Videos: store}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp videoListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(resp.Videos))
	}
	if resp.Videos[0].ID != "video-2" {
		t.Fatalf("expected listing order preserved, got %+v", resp.Videos)
	}
}

func TestVideoHandlerListStoreFailure(t *testing.T) {
	handler := VideoHandler{Videos: &stubVideoStore{listErr: errors.New("database down")}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestVideoHandlerListMethodNotAllowed(t *testing.T) {
	handler := VideoHandler{Videos: &stubVideoStore{}}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/videos", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestListLimit(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", defaultListLimit},
		{"limit=10", 10},
		{"limit=0", defaultListLimit},
		{"limit=abc", defaultListLimit},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/videos?"+tc.query, nil)
		if got := listLimit(req); got != tc.want {
			t.Fatalf("listLimit(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}

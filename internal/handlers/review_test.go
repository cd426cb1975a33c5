package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clipstream/backend/internal/models"
	"github.com/clipstream/backend/internal/repositories"
)

type stubVideoStore struct {
	published    []models.Video
	pending      []models.Video
	listErr      error
	publishedIDs []string
	publishErr   error
}

func (s *stubVideoStore) ListPublished(context.Context, int) ([]models.Video, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.published, nil
}

func (s *stubVideoStore) ListPendingReview(context.Context, int) ([]models.Video, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.pending, nil
}

func (s *stubVideoStore) SetPublished(_ context.Context, videoID string) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.publishedIDs = append(s.publishedIDs, videoID)
	return nil
}

func TestReviewHandlerQueue(t *testing.T) {
	store := &stubVideoStore{pending: []models.Video{
		{ID: "video-1", Title: "Held clip", IsPublished: false},
	}}
	handler := ReviewHandler{Sessions: &stubSessionManager{userID: "mod-1"}, Videos: store}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/moderation/queue", nil)
	req.Header.Set("Authorization", "Bearer mod-token")
	rec := httptest.NewRecorder()

	handler.Queue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp videoListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Videos) != 1 || resp.Videos[0].ID != "video-1" {
		t.Fatalf("unexpected queue contents: %+v", resp.Videos)
	}
	if resp.Videos[0].IsPublished {
		t.Fatal("queued video should not be published")
	}
}

func TestReviewHandlerQueueUnauthorized(t *testing.T) {
	handler := ReviewHandler{
		Sessions: &stubSessionManager{authErr: context.DeadlineExceeded},
		Videos:   &stubVideoStore{},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/moderation/queue", nil)
	rec := httptest.NewRecorder()

	handler.Queue(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestReviewHandlerPublish(t *testing.T) {
	store := &stubVideoStore{}
	handler := ReviewHandler{Sessions: &stubSessionManager{userID: "mod-1"}, Videos: store}

	body, err := json.Marshal(publishRequest{VideoID: "video-1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderation/publish", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer mod-token")
	rec := httptest.NewRecorder()

	handler.Publish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	if len(store.publishedIDs) != 1 || store.publishedIDs[0] != "video-1" {
		t.Fatalf("expected video-1 to be published, got %+v", store.publishedIDs)
	}
}

func TestReviewHandlerPublishUnknownVideo(t *testing.T) {
	store := &stubVideoStore{publishErr: repositories.ErrNotFound}
	handler := ReviewHandler{Sessions: &stubSessionManager{userID: "mod-1"}, Videos: store}

	body, err := json.Marshal(publishRequest{VideoID: "missing"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderation/publish", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer mod-token")
	rec := httptest.NewRecorder()

	handler.Publish(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
}

func TestReviewHandlerPublishMissingID(t *testing.T) {
	handler := ReviewHandler{Sessions: &stubSessionManager{userID: "mod-1"}, Videos: &stubVideoStore{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderation/publish", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer mod-token")
	rec := httptest.NewRecorder()

	handler.Publish(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

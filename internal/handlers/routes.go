package handlers

import (
	"net/http"

	"github.com/clipstream/backend/internal/uploads"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	upload := UploadHandler{
		Sessions: deps.Sessions,
		Staging:  deps.Staging,
		Pipeline: deps.Pipeline,
		MaxBytes: deps.UploadMaxBytes,
	}
	videos := VideoHandler{Videos: deps.Videos}
	review := ReviewHandler{Sessions: deps.Sessions, Videos: deps.Videos}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/v1/auth/login", auth.Login)
	mux.HandleFunc("/api/v1/auth/signup", auth.SignUp)
	mux.HandleFunc("/api/v1/auth/refresh", auth.Refresh)
	mux.HandleFunc("/api/v1/videos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			upload.Create(w, r)
		case http.MethodGet:
			videos.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/moderation/queue", review.Queue)
	mux.HandleFunc("/api/v1/moderation/publish", review.Publish)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users          UserStore
	Sessions       SessionManager
	Videos         VideoStore
	Pipeline       UploadPipeline
	Staging        *uploads.Staging
	AuthLimiter    RateLimiter
	UploadMaxBytes int64
}

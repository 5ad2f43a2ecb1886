package routes

import (
	"net/http"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/handlers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	authHandler *handlers.AuthHandler

	uploadHandler *handlers.UploadHandler

	reportHandler *handlers.ReportHandler

	conversationHandler *handlers.ConversationHandler

	sseHandler *handlers.SSEHandler

	sessions middleware.SessionVerifier
	metrics  *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	authHandler *handlers.AuthHandler,

	uploadHandler *handlers.UploadHandler,

	reportHandler *handlers.ReportHandler,

	conversationHandler *handlers.ConversationHandler,

	sseHandler *handlers.SSEHandler,

	sessions middleware.SessionVerifier,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		authHandler: authHandler,

		uploadHandler: uploadHandler,

		reportHandler: reportHandler,

		conversationHandler: conversationHandler,

		sseHandler: sseHandler,

		sessions: sessions,
		metrics:  metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Session endpoints; sign-in happens before a session exists, so it
	// stays outside the auth wrapper.

	r.mux.HandleFunc("POST /api/auth/session", r.authHandler.SignIn)

	authed := middleware.Auth(r.sessions)

	r.mux.Handle("DELETE /api/auth/session", authed(http.HandlerFunc(r.authHandler.SignOut)))

	r.mux.Handle("GET /api/auth/me", authed(http.HandlerFunc(r.authHandler.CurrentUser)))

	// Upload endpoint

	r.mux.Handle("POST /api/upload", authed(http.HandlerFunc(r.uploadHandler.Upload)))

	// Report endpoints

	r.mux.Handle("POST /api/reports", authed(http.HandlerFunc(r.reportHandler.CreateReport)))

	r.mux.Handle("GET /api/reports", authed(http.HandlerFunc(r.reportHandler.ListReports)))

	// Conversation endpoints

	r.mux.Handle("POST /api/conversations/send", authed(http.HandlerFunc(r.conversationHandler.Send)))

	r.mux.Handle("GET /api/conversations", authed(http.HandlerFunc(r.conversationHandler.History)))

	// Live update streams
	if r.sseHandler != nil {
		r.mux.Handle("GET /api/stream/reports", authed(http.HandlerFunc(r.sseHandler.StreamReports)))
		r.mux.Handle("GET /api/stream/conversations", authed(http.HandlerFunc(r.sseHandler.StreamConversations)))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on rejections
	handler = middleware.CORSMiddleware(handler)

	return handler
}

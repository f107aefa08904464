package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/gradelab/backend/grading"
)

type HttpServer struct {
	gradingSrvc *grading.GradingSrvc
	router      *chi.Mux

	imageMaxWidth     uint
	imageFetchTimeout time.Duration
}

func NewHttpServer(
	gradingSrvc *grading.GradingSrvc,
	allowedOrigins []string,
	imageMaxWidth uint,
	imageFetchTimeout time.Duration,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("gradebench", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(newStatsLogger().middleware)

	server := &HttpServer{
		gradingSrvc:       gradingSrvc,
		router:            router,
		imageMaxWidth:     imageMaxWidth,
		imageFetchTimeout: imageFetchTimeout,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Handler exposes the router, mainly for tests.
func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Post("/dataset", httpserver.uploadDataset)
	r.Get("/dataset/original", httpserver.downloadOriginal)
	r.Get("/session", httpserver.getSession)
	r.Post("/session/restore", httpserver.requestRestore)
	r.Post("/session/prompt", httpserver.setPrompt)
	r.Post("/session/score", httpserver.setScore)
	r.Post("/session/tier", httpserver.selectTier)
	r.Post("/session/nav", httpserver.navigate)
	r.Post("/session/save", httpserver.manualSave)
	r.Get("/export", httpserver.exportResults)
	r.Get("/rows/{rowIdx}/images/{imageNum}", httpserver.getRowImage)
}

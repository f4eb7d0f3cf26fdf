package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/anubhavkohli2718/call-summarzy/internal/config"
	"github.com/anubhavkohli2718/call-summarzy/internal/diarize"
	"github.com/anubhavkohli2718/call-summarzy/internal/model"
	"github.com/anubhavkohli2718/call-summarzy/internal/pipeline"
	"github.com/anubhavkohli2718/call-summarzy/internal/upstream/openai"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

type PipelineService interface {
	Process(ctx context.Context, in pipeline.ProcessInput) (pipeline.ProcessResult, error)
}

type UpstreamChecker interface {
	CheckModels(ctx context.Context) error
}

type MetricsObserver interface {
	ObserveHTTP(route, method string, status int, duration time.Duration)
	ObserveCall(namedSpeakers, syntheticSpeakers, actionItems int)
	ObserveStage(stage string, duration time.Duration)
}

type Dependencies struct {
	Pipeline       PipelineService
	Upstream       UpstreamChecker
	Metrics        MetricsObserver
	MetricsHandler http.Handler
}

type server struct {
	cfg          config.Config
	logger       *slog.Logger
	pipeline     PipelineService
	upstream     UpstreamChecker
	metrics      MetricsObserver
	metricsRoute http.Handler
}

type ctxKey string

const (
	requestIDHeader  = "X-Request-Id"
	requestIDContext = ctxKey("request_id")
)

var (
	allowedExtensions  = []string{".mp3", ".wav", ".m4a", ".flac", ".ogg", ".webm", ".mp4", ".mpeg"}
	supportedLanguages = []string{"en", "es"}
)

func NewServer(cfg config.Config, logger *slog.Logger, deps Dependencies) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Pipeline == nil || deps.Upstream == nil {
		panic("httpapi: all dependencies are required")
	}

	s := &server{
		cfg:          cfg,
		logger:       logger,
		pipeline:     deps.Pipeline,
		upstream:     deps.Upstream,
		metrics:      deps.Metrics,
		metricsRoute: deps.MetricsHandler,
	}

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	if s.metricsRoute != nil {
		r.Handle("/metrics", s.metricsRoute)
	}
	r.Post("/transcribe", s.handleTranscribe)

	return r
}

func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.RootResponse{
		Message:            "Audio Transcription API",
		Status:             "running",
		SupportedLanguages: supportedLanguages,
	})
}

// handleHealth reports liveness unconditionally. ModelLoaded reflects
// whether the upstream transcription model is usable right now.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:      "healthy",
		ModelLoaded: s.modelLoaded(r.Context()),
	})
}

func (s *server) modelLoaded(ctx context.Context) bool {
	if s.cfg.UpstreamAPIKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.upstream.CheckModels(ctx) == nil
}

func (s *server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	file, header, form, err := s.readMultipartAudio(w, r)
	if err != nil {
		s.handleMultipartReadError(w, r, err)
		return
	}
	defer cleanupMultipartForm(form)
	defer func() { _ = file.Close() }()

	if !isAllowedExtension(header.Filename) {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request",
			"unsupported file type, allowed: "+strings.Join(allowedExtensions, ", "), nil)
		return
	}

	language := strings.TrimSpace(r.FormValue("language"))
	if !isSupportedLanguage(language) {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request",
			"language must be one of "+strings.Join(supportedLanguages, ", ")+", or empty for auto detection", nil)
		return
	}

	if s.cfg.UpstreamAPIKey == "" {
		s.writeError(w, r, http.StatusServiceUnavailable, "model_unavailable",
			"transcription model is not configured", nil)
		return
	}

	result, err := s.pipeline.Process(r.Context(), pipeline.ProcessInput{
		File:     file,
		FileName: header.Filename,
		FileSize: header.Size,
		Language: language,
	})
	if err != nil {
		s.writeMappedError(w, r, err)
		return
	}

	s.observeCall(result)
	writeJSON(w, http.StatusOK, toTranscribeResponse(result))
}

func (s *server) observeCall(result pipeline.ProcessResult) {
	if s.metrics == nil {
		return
	}
	named, synthetic := 0, 0
	for _, speaker := range result.Speakers {
		if diarize.IsSyntheticLabel(speaker) {
			synthetic++
		} else {
			named++
		}
	}
	s.metrics.ObserveStage("transcription", result.Timings.Transcription)
	s.metrics.ObserveStage("analysis", result.Timings.Analysis)
	s.metrics.ObserveCall(named, synthetic, len(result.ActionItems))
}

// toTranscribeResponse maps a pipeline result onto the response envelope.
// Slice fields are always non nil so empty transcripts serialize as [].
func toTranscribeResponse(result pipeline.ProcessResult) model.TranscribeResponse {
	items := make([]model.ActionItem, 0, len(result.ActionItems))
	for _, item := range result.ActionItems {
		items = append(items, model.ActionItem{
			Assignee:    item.Assignee,
			Description: item.Description,
			Speaker:     item.Speaker,
			Timestamp:   item.Timestamp,
			Date:        item.Date,
			Time:        item.Time,
		})
	}

	withSpeakers := make([]model.SpeakerSegment, 0, len(result.Segments))
	segments := make([]model.TranscriptSegment, 0, len(result.Segments))
	for i, seg := range result.Segments {
		withSpeakers = append(withSpeakers, model.SpeakerSegment{
			Speaker: seg.Speaker,
			Text:    seg.Text,
			Start:   seg.Start,
			End:     seg.End,
		})
		segments = append(segments, model.TranscriptSegment{
			ID:      i,
			Speaker: seg.Speaker,
			Start:   seg.Start,
			End:     seg.End,
			Text:    seg.Text,
		})
	}

	return model.TranscribeResponse{
		Success:                   true,
		Transcription:             result.Transcription,
		LanguageDetected:          result.LanguageDetected,
		LanguageRequested:         result.LanguageRequested,
		Summary:                   result.Summary,
		ActionItems:               items,
		TranscriptionWithSpeakers: withSpeakers,
		Segments:                  segments,
		Metadata: model.TranscriptionMetadata{
			Filename:           result.Metadata.Filename,
			FileSize:           result.Metadata.FileSize,
			Duration:           result.Metadata.Duration,
			SpeakerDiarization: result.Metadata.SpeakerDiarization,
			TotalSpeakers:      result.Metadata.TotalSpeakers,
			TotalActionItems:   result.Metadata.TotalActionItems,
		},
	}
}

func isAllowedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func isSupportedLanguage(language string) bool {
	if language == "" {
		return true
	}
	for _, supported := range supportedLanguages {
		if language == supported {
			return true
		}
	}
	return false
}

func (s *server) readMultipartAudio(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, *multipart.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(minInt64(s.cfg.MaxUploadBytes, 8<<20)); err != nil {
		return nil, nil, nil, err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, r.MultipartForm, err
	}
	return file, header, r.MultipartForm, nil
}

func (s *server) handleMultipartReadError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "request_too_large", fmt.Sprintf("request exceeds %d bytes", s.cfg.MaxUploadBytes), nil)
		return
	}
	if strings.Contains(strings.ToLower(err.Error()), "no such file") || strings.Contains(strings.ToLower(err.Error()), "missing") {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "multipart field 'file' is required", nil)
		return
	}
	s.writeError(w, r, http.StatusBadRequest, "invalid_request", "invalid multipart form data", nil)
}

func (s *server) writeMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "request failed"
	details := detailsForError(err)

	var upstreamErr *openai.Error
	switch {
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
		code = "upstream_request_failed"
		message = "upstream request failed"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		code = "timeout"
		message = "request timed out"
	case errors.Is(err, context.Canceled):
		status = 499
		code = "canceled"
		message = "request canceled"
	}

	s.writeError(w, r, status, code, message, details)
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	if rid := requestIDFromContext(r.Context()); rid != "" {
		w.Header().Set(requestIDHeader, rid)
	}
	writeJSON(w, status, model.ErrorResponse{
		Error:     model.APIError{Code: code, Message: message, Details: details},
		RequestID: requestIDFromContext(r.Context()),
	})
}

func (s *server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDContext, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		duration := time.Since(started)
		if s.metrics != nil {
			s.metrics.ObserveHTTP(route, r.Method, status, duration)
		}

		s.logger.Info("http_request",
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", duration.Milliseconds(),
		)
	})
}

func (s *server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "request_id", requestIDFromContext(r.Context()), "panic", rec)
				s.writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func cleanupMultipartForm(form *multipart.Form) {
	if form != nil {
		_ = form.RemoveAll()
	}
}

func requestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDContext).(string)
	return value
}

func detailsForError(err error) map[string]any {
	if err == nil {
		return nil
	}
	details := map[string]any{"error": err.Error()}
	var upstreamErr *openai.Error
	if errors.As(err, &upstreamErr) {
		details["upstream_status"] = upstreamErr.StatusCode
		if upstreamErr.Body != "" {
			details["upstream_body"] = upstreamErr.Body
		}
	}
	return details
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

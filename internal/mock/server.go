package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Server represents the mock generation service
type Server struct {
	config    *Config
	generator *Generator
	log       zerolog.Logger
	logs      []RequestLog
	logsMutex sync.RWMutex
	notifyCh  chan struct{} // Channel to notify when new log arrives
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewServer creates a new mock server
func NewServer(config *Config, logger zerolog.Logger) *Server {
	config.applyDefaults()

	return &Server{
		config:    config,
		generator: NewGenerator(config.Seed),
		log:       logger.With().Str("component", "mock").Logger(),
		logs:      make([]RequestLog, 0),
		notifyCh:  make(chan struct{}, 100), // Buffered channel for notifications
		sleep:     sleepContext,
	}
}

// Handler returns the service routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route(s.config.BasePath+"/testdata", func(r chi.Router) {
		r.Get("/generate/{type}", s.handleGenerate)
		r.Get("/templates", s.handleTemplates)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		})
	})

	return r
}

// Serve listens on the configured address until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("Mock service listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Debug().Msg("Shutting down mock service")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "type")

	count := DefaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > MaxCount {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("count must be an integer between 0 and %d", MaxCount),
			})
			return
		}
		count = n
	}

	// Simulate async processing
	if s.config.RecordDelay > 0 && count > 0 {
		if err := s.sleep(r.Context(), s.config.RecordDelay*time.Duration(count)); err != nil {
			return
		}
	}

	records := s.generator.Records(entityType, count)
	setRecordCount(r, len(records))

	if s.config.SingleObject && len(records) == 1 {
		writeJSON(w, http.StatusOK, records[0])
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.config.Templates)
}

// requestLogger records every request once the response is written
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		info := &requestInfo{}
		r = r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, info))

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := RequestLog{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Records:   info.records,
			Status:    status,
			Duration:  time.Since(start),
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			entry.EntityType = rctx.URLParam("type")
		}

		s.log.Debug().
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status", entry.Status).
			Int("records", entry.Records).
			Dur("duration", entry.Duration).
			Msg("Request served")

		if s.config.Logging {
			s.logRequest(entry)
		}
	})
}

type requestInfoKey struct{}

type requestInfo struct {
	records int
}

func setRecordCount(r *http.Request, n int) {
	if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
		info.records = n
	}
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)

	// Keep only the most recent entries
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// Channel full, skip notification
	}
}

// NotifyChannel returns the notification channel
func (s *Server) NotifyChannel() <-chan struct{} {
	return s.notifyCh
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	// Return a copy
	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// BaseURL returns the URL clients should use as their API root
func (s *Server) BaseURL() string {
	return "http://" + s.Addr() + strings.TrimRight(s.config.BasePath, "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

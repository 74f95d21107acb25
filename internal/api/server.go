package api

import (
	"fmt"
	"net/http"

	"github.com/tartil-labs/sanad/core/llm"
	"github.com/tartil-labs/sanad/core/matcher"
	"github.com/tartil-labs/sanad/internal/logging"
)

// Version is the API version string reported by health and root endpoints.
const Version = "1.0.0"

// Server holds the API dependencies: the verse matcher, the document
// processor, and the WebSocket hub.
type Server struct {
	matcher   *matcher.Matcher
	processor *llm.Processor
	hub       *Hub
	cfg       Config
}

// NewServer creates a server around an existing matcher and processor.
func NewServer(m *matcher.Matcher, proc *llm.Processor, cfg Config) *Server {
	return &Server{
		matcher:   m,
		processor: proc,
		hub:       NewHub(),
		cfg:       cfg,
	}
}

// Hub exposes the event hub so callers can broadcast their own events.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler builds the full HTTP handler stack: routes wrapped in CORS,
// rate limiting, and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/validate", s.handleValidate)
	mux.HandleFunc("/v1/detect", s.handleDetect)
	mux.HandleFunc("/v1/process", s.handleProcess)
	mux.HandleFunc("/v1/search", s.handleSearch)
	mux.HandleFunc("/v1/verses/", s.handleVerses)
	mux.HandleFunc("/v1/surahs", s.handleSurahs)
	mux.HandleFunc("/v1/surahs/", s.handleSurahs)
	mux.HandleFunc("/v1/prompt", s.handlePrompt)
	mux.HandleFunc("/v1/stream", s.hub.handleStream)

	var handler http.Handler = mux
	handler = s.corsMiddleware(handler)
	if s.cfg.RateLimitRequests > 0 {
		limiter := NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: s.cfg.RateLimitRequests,
			BurstSize:         s.cfg.RateLimitBurst,
		})
		handler = limiter.Middleware(handler)
	}
	return logging.CombinedMiddleware(handler)
}

// Start runs the hub and blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	go s.hub.Run()
	logging.ServerStartup("api", "http", s.cfg.Port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.cfg.Port), s.Handler())
}

// corsMiddleware applies the configured origin allowlist. An empty
// allowlist permits any origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

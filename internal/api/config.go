package api

// Config holds server configuration.
type Config struct {
	Port              int
	RateLimitRequests int      // requests per minute (0 = disabled)
	RateLimitBurst    int      // burst size
	AllowedOrigins    []string // CORS allowed origins (empty = allow all)
}

package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	leadHTTP "lead-webhook-bridge/internal/lead/delivery/http"
	"lead-webhook-bridge/pkg/log"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultPrivacyContact  = "example@example.com"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	privacyContact  string
	shutdownTimeout time.Duration

	// Lead domain
	leadHandler leadHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	PrivacyContact  string
	ShutdownTimeout time.Duration

	// Lead domain
	LeadHandler leadHTTP.Handler
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		privacyContact:  cfg.PrivacyContact,
		shutdownTimeout: cfg.ShutdownTimeout,
		leadHandler:     cfg.LeadHandler,
	}

	if srv.privacyContact == "" {
		srv.privacyContact = defaultPrivacyContact
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the router, for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

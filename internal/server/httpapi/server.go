// Package httpapi exposes the account service over HTTP with JSON bodies.
// Handlers are plain functions registered on a gin router; service errors
// are mapped to status codes here and nowhere else.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skycastlabs/accounts/internal/logging"
	"github.com/skycastlabs/accounts/internal/server/services"
)

// Service is the part of the account workflow the transport needs.
type Service interface {
	Register(ctx context.Context, username, email, password, phoneNumber, role string) (*services.RegisterResult, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyAndResetPassword(ctx context.Context, email, otp, newPassword string) error
	UpdateProfile(ctx context.Context, userID, username, email, phoneNumber string) (*services.Profile, error)
}

// Server hosts the HTTP endpoint.
type Server struct {
	addr      string
	accounts  Service
	logger    logging.Logger
	jwtSecret []byte
}

// NewServer builds a Server listening on addr.
func NewServer(addr string, l logging.Logger, accounts Service, secretKey string) *Server {
	return &Server{
		addr:      addr,
		logger:    l.With("module", "http_server"),
		accounts:  accounts,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the gin engine with all routes registered. Split out from
// Run so tests can drive it with httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/users")
	{
		api.POST("/create", s.handleCreate)
		api.POST("/login", s.handleLogin)
		api.POST("/forgot-password", s.handleForgotPassword)
		api.POST("/verify-email-and-otp-password", s.handleVerifyAndReset)
		// legacy alias kept for the mobile app's reset link
		api.POST("/update/password", s.handleVerifyAndReset)
		api.PATCH("/profile/update", s.requireAuth(), s.handleProfileUpdate)
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Package httpapi exposes the store and advisory contracts over HTTP/JSON
// for the browser UI.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fortress-vault/fortress/internal/logging"
	"github.com/fortress-vault/fortress/internal/server/advisor"
	"github.com/fortress-vault/fortress/internal/server/identity"
	"github.com/fortress-vault/fortress/internal/server/models"
	"github.com/fortress-vault/fortress/internal/server/passwords"
	"github.com/fortress-vault/fortress/internal/server/users"
)

// DepartmentService is the department slice of the store contract.
type DepartmentService interface {
	List(ctx context.Context) ([]*models.Department, error)
	Save(ctx context.Context, actor identity.Identity, name string, id string) (*models.Department, error)
	Delete(ctx context.Context, actor identity.Identity, id string) error
}

// UserService is the user slice of the store contract.
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Save(ctx context.Context, actor identity.Identity, in users.SaveInput, id string) (*models.User, error)
	Deactivate(ctx context.Context, actor identity.Identity, id string) error
}

// PasswordService is the credential slice of the store contract.
type PasswordService interface {
	List(ctx context.Context) ([]*models.Password, error)
	Save(ctx context.Context, actor identity.Identity, in passwords.SaveInput, id string) (*models.Password, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	departments DepartmentService
	users       UserService
	passwords   PasswordService
	advisor     advisor.Advisor
	debouncer   *advisor.Debouncer
}

func NewServer(
	address string,
	logger logging.Logger,
	ds DepartmentService,
	us UserService,
	ps PasswordService,
	adv advisor.Advisor,
	deb *advisor.Debouncer,
) *Server {
	return &Server{
		address:     address,
		logger:      logger.With("module", "http_server"),
		departments: ds,
		users:       us,
		passwords:   ps,
		advisor:     adv,
		debouncer:   deb,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.identityMiddleware())

	api := r.Group("/api")
	{
		api.GET("/departments", s.listDepartments)
		api.POST("/departments", s.saveDepartment)
		api.DELETE("/departments/:id", s.deleteDepartment)

		api.GET("/users", s.listUsers)
		api.POST("/users", s.saveUser)
		api.POST("/users/:id/deactivate", s.deactivateUser)

		api.GET("/passwords", s.listPasswords)
		api.POST("/passwords", s.savePassword)
		api.GET("/passwords/generate", s.generatePassword)

		api.POST("/suggest-expiry", s.suggestExpiry)
	}

	return r
}

// identityMiddleware attaches the acting identity to the request context.
// There is no authentication in this deployment; the built-in administrator
// performs every action.
func (s *Server) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := identity.WithIdentity(c.Request.Context(), identity.Admin())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

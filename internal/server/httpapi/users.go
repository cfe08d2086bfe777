package httpapi

import (
	"net/mail"

	"github.com/gin-gonic/gin"

	"github.com/fortress-vault/fortress/internal/server/identity"
	"github.com/fortress-vault/fortress/internal/server/models"
	"github.com/fortress-vault/fortress/internal/server/users"
)

type saveUserRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID string `json:"departmentId"`
}

func (s *Server) listUsers(c *gin.Context) {
	result, err := s.users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (s *Server) saveUser(c *gin.Context) {
	var req saveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Malformed request body")
		return
	}
	if req.Name == "" {
		failValidation(c, "Name is required")
		return
	}
	role := models.UserRole(req.Role)
	if !role.IsValid() {
		failValidation(c, "Role must be Admin or User")
		return
	}
	if req.DepartmentID == "" {
		failValidation(c, "Department is required")
		return
	}
	// email is only accepted on create; updates never change it
	if req.ID == "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			failValidation(c, "Please enter a valid email address")
			return
		}
	}

	actor, _ := identity.FromContext(c.Request.Context())
	in := users.SaveInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		DepartmentID: req.DepartmentID,
	}
	u, err := s.users.Save(c.Request.Context(), actor, in, req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

func (s *Server) deactivateUser(c *gin.Context) {
	actor, _ := identity.FromContext(c.Request.Context())
	if err := s.users.Deactivate(c.Request.Context(), actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

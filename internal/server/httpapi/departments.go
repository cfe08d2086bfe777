package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fortress-vault/fortress/internal/server/identity"
)

type saveDepartmentRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) listDepartments(c *gin.Context) {
	result, err := s.departments.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (s *Server) saveDepartment(c *gin.Context) {
	var req saveDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Malformed request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		failValidation(c, "Name is required")
		return
	}

	actor, _ := identity.FromContext(c.Request.Context())
	d, err := s.departments.Save(c.Request.Context(), actor, req.Name, req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, d)
}

func (s *Server) deleteDepartment(c *gin.Context) {
	actor, _ := identity.FromContext(c.Request.Context())
	if err := s.departments.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

package httpapi

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fortress-vault/fortress/internal/server/identity"
	"github.com/fortress-vault/fortress/internal/server/models"
	"github.com/fortress-vault/fortress/internal/server/passwords"
)

type savePasswordRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	PasswordValue string `json:"passwordValue"`
	URL           string `json:"url"`
	Notes         string `json:"notes"`
	Folder        string `json:"folder"`
	ExpiryDate    string `json:"expiryDate"`
}

func (s *Server) listPasswords(c *gin.Context) {
	result, err := s.passwords.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result)
}

func (s *Server) savePassword(c *gin.Context) {
	var req savePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, "Malformed request body")
		return
	}
	if req.Name == "" {
		failValidation(c, "Name is required")
		return
	}
	if req.Username == "" {
		failValidation(c, "Username is required")
		return
	}
	if req.PasswordValue == "" {
		failValidation(c, "Password is required")
		return
	}
	folder := models.Folder(req.Folder)
	if !folder.IsValid() {
		failValidation(c, "Folder must be Work, Personal or Uncategorized")
		return
	}
	// url is optional but must be well formed when present; the store does
	// not re-validate
	if req.URL != "" && !isWellFormedURL(req.URL) {
		failValidation(c, "Please enter a valid URL")
		return
	}

	actor, _ := identity.FromContext(c.Request.Context())
	in := passwords.SaveInput{
		Name:          req.Name,
		Username:      req.Username,
		PasswordValue: req.PasswordValue,
		URL:           req.URL,
		Notes:         req.Notes,
		Folder:        folder,
		ExpiryDate:    req.ExpiryDate,
	}
	p, err := s.passwords.Save(c.Request.Context(), actor, in, req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (s *Server) generatePassword(c *gin.Context) {
	opts := passwords.GeneratorOptions{
		Length:  queryInt(c, "length", 16),
		Upper:   queryBool(c, "upper", true),
		Lower:   queryBool(c, "lower", true),
		Digits:  queryBool(c, "digits", true),
		Symbols: queryBool(c, "symbols", false),
	}

	pw, err := passwords.Generate(opts)
	if err != nil {
		failValidation(c, err.Error())
		return
	}
	ok(c, gin.H{"password": pw})
}

func isWellFormedURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryBool(c *gin.Context, key string, def bool) bool {
	v := c.Query(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

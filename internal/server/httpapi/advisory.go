package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fortress-vault/fortress/internal/server/advisor"
)

// formSessionHeader identifies a form editing session. Requests carrying it
// are debounced and superseded per session; requests without it call the
// advisor directly.
const formSessionHeader = "X-Form-Session"

type suggestExpiryRequest struct {
	Password        string  `json:"password"`
	LastChangedDate string  `json:"lastChangedDate"`
	UsageFrequency  float64 `json:"usageFrequency"`
}

// suggestExpiry answers with the advisory contract's own shape:
// {"expiryDate","reason"} on success or {"error"} on failure, so the form can
// discriminate by shape. The advisory path never touches the save path.
func (s *Server) suggestExpiry(c *gin.Context) {
	var req suggestExpiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}
	if req.Password == "" || req.UsageFrequency < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required and usageFrequency must be non-negative"})
		return
	}
	if req.LastChangedDate == "" {
		req.LastChangedDate = time.Now().UTC().Format(time.RFC3339)
	} else if _, err := time.Parse(time.RFC3339, req.LastChangedDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lastChangedDate must be an ISO-8601 timestamp"})
		return
	}

	input := advisor.Request{
		Password:        req.Password,
		LastChangedDate: req.LastChangedDate,
		UsageFrequency:  req.UsageFrequency,
	}

	if session := c.GetHeader(formSessionHeader); session != "" {
		outcome := <-s.debouncer.Submit(session, input)
		if outcome.Superseded {
			c.JSON(http.StatusConflict, gin.H{"error": "Superseded by newer input"})
			return
		}
		s.writeSuggestion(c, outcome.Suggestion, outcome.Err)
		return
	}

	suggestion, err := s.advisor.SuggestExpiry(c.Request.Context(), input)
	s.writeSuggestion(c, suggestion, err)
}

func (s *Server) writeSuggestion(c *gin.Context, suggestion *advisor.Suggestion, err error) {
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to get suggestion. Please try again."})
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

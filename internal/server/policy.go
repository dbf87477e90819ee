package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sendbackhq/sendback/internal/common"
)

// lookupPolicy resolves merchant policy fields, via LLM summarization when a
// backend is configured and the static table otherwise. Summarization
// failures degrade silently to the table entry.
func (s *Server) lookupPolicy(c *gin.Context) {
	merchant := strings.TrimSpace(c.Query("merchant"))
	if merchant == "" {
		respondError(c, common.ValidationError("merchant is required"))
		return
	}
	text := c.Query("text")

	p := s.summarizer.Summarize(c.Request.Context(), merchant, text)
	c.JSON(200, gin.H{"merchant": merchant, "policy": p})
}

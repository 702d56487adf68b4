// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the client's session identifier. The server
// generates one when the client has none yet and echoes it back so the
// client can persist it.
const SessionHeader = "X-Session-ID"

// getOrCreateSessionID resolves the session for a request
func getOrCreateSessionID(c *gin.Context) string {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	c.Header(SessionHeader, sessionID)
	return sessionID
}

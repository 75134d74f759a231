package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// messageIDPrefix matches the id shape downstream workflows expect.
const messageIDPrefix = "wamid."

// SendWhatsApp is a transport stub: it mints an opaque message id and
// leaves real delivery to the downstream workflow engine.
func SendWhatsApp(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message_id": messageIDPrefix + randomHex(6)})
}

// ScheduleFollowup is a scheduling stub: it acknowledges the request;
// persistence and triggering live outside this service.
func ScheduleFollowup(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scheduled": true})
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

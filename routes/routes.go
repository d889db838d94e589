package routes

import (
	"context"
	"net/http"

	"remindbot/config"
	"remindbot/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the webhook-mode HTTP surface: Telegram posts updates to
// /webhook, /ping answers health probes.
func SetupRouter(h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(config.PerformanceLogger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	r.POST("/webhook", func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}

		// Telegram only needs the 200; handling continues past the response.
		go h.HandleUpdate(context.Background(), update)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

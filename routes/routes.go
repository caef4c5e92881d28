package routes

import (
	"frontdesk/handlers"
	"frontdesk/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the voice webhooks and operational endpoints.
func RegisterRoutes(r *gin.Engine, voice *handlers.VoiceHandler) {
	webhook := r.Group("")
	webhook.Use(middleware.RateLimitMiddleware())
	{
		webhook.POST("/voice", voice.VoiceWebhook)
		webhook.POST("/handle_speech", voice.HandleSpeech)
		webhook.POST("/call_status", voice.CallStatus)
	}

	r.GET("/healthz", handlers.HealthHandler)
}

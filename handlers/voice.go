package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"frontdesk/config"
	"frontdesk/services/dialogue"
	"frontdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VoiceHandler serves the telephony voice webhooks.
type VoiceHandler struct {
	Dialogue dialogue.Service
}

// NewVoiceHandler returns a VoiceHandler for the given dialogue service.
func NewVoiceHandler(svc dialogue.Service) *VoiceHandler {
	return &VoiceHandler{Dialogue: svc}
}

// VoiceWebhook answers a newly connected call with the greeting and a speech
// gather.
func (h *VoiceHandler) VoiceWebhook(c *gin.Context) {
	logger := utils.GetLogger()

	callSid := c.PostForm("CallSid")
	caller := c.PostForm("From")
	if callSid == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing CallSid", "the telephony transport must supply a call identifier")
		return
	}

	if err := h.Dialogue.StartCall(c.Request.Context(), callSid, caller); err != nil {
		logger.Error("VoiceWebhook: failed to start call session", zap.String("callSid", callSid), zap.Error(err))
		// Still greet; the session will be created lazily on the first turn.
	}

	greeting := fmt.Sprintf("Hello, welcome to %s. This is %s, your virtual assistant. How may I help you today?",
		config.AppConfig.BusinessName, config.AppConfig.AssistantName)
	renderTwiML(c, TwiMLResponse{Gather: gatherSpeech(greeting)})
}

// HandleSpeech runs one dialogue turn for the transcribed caller utterance
// and speaks the reply. The webhook never returns silence: any internal
// failure still yields a spoken fallback.
func (h *VoiceHandler) HandleSpeech(c *gin.Context) {
	logger := utils.GetLogger()

	callSid := c.PostForm("CallSid")
	caller := c.PostForm("From")
	utterance := strings.TrimSpace(c.PostForm("SpeechResult"))
	if callSid == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing CallSid", "the telephony transport must supply a call identifier")
		return
	}

	reply, err := h.Dialogue.HandleTurn(c.Request.Context(), callSid, caller, utterance)
	if err != nil {
		logger.Error("HandleSpeech: turn failed", zap.String("callSid", callSid), zap.Error(err))
		reply = dialogue.ReplyEngineFallback
	}

	goodbye := fmt.Sprintf("Thank you for choosing %s. Have a great day!", config.AppConfig.BusinessName)
	renderTwiML(c, TwiMLResponse{
		Gather: gatherSpeech(reply),
		// Spoken only if the gather times out without further speech.
		Say:    say(goodbye),
		Hangup: &Hangup{},
	})
}

// CallStatus receives the transport's status callbacks and evicts the
// session once the call is over.
func (h *VoiceHandler) CallStatus(c *gin.Context) {
	logger := utils.GetLogger()

	callSid := c.PostForm("CallSid")
	status := c.PostForm("CallStatus")
	if callSid == "" {
		c.Status(http.StatusOK)
		return
	}

	switch status {
	case "completed", "failed", "busy", "no-answer", "canceled":
		if err := h.Dialogue.EndCall(c.Request.Context(), callSid); err != nil {
			logger.Warn("CallStatus: failed to end call", zap.String("callSid", callSid), zap.Error(err))
		}
	}
	c.Status(http.StatusOK)
}

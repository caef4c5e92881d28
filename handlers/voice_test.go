package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"frontdesk/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDialogue struct {
	started  []string
	ended    []string
	lastCall string
	lastUtt  string
	reply    string
	err      error
}

func (s *stubDialogue) StartCall(ctx context.Context, callID, callerPhone string) error {
	s.started = append(s.started, callID)
	return nil
}

func (s *stubDialogue) HandleTurn(ctx context.Context, callID, callerPhone, utterance string) (string, error) {
	s.lastCall = callID
	s.lastUtt = utterance
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubDialogue) EndCall(ctx context.Context, callID string) error {
	s.ended = append(s.ended, callID)
	return nil
}

func newTestRouter(svc *stubDialogue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.AppConfig.BusinessName = "BrightSmile Dental"
	config.AppConfig.AssistantName = "Emma"

	h := NewVoiceHandler(svc)
	r := gin.New()
	r.POST("/voice", h.VoiceWebhook)
	r.POST("/handle_speech", h.HandleSpeech)
	r.POST("/call_status", h.CallStatus)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVoiceWebhookGreets(t *testing.T) {
	svc := &stubDialogue{}
	r := newTestRouter(svc)

	w := postForm(r, "/voice", url.Values{
		"CallSid": {"CA1"},
		"From":    {"+15551234567"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<Response>")
	assert.Contains(t, body, "welcome to BrightSmile Dental")
	assert.Contains(t, body, `action="/handle_speech"`)
	assert.Equal(t, []string{"CA1"}, svc.started)
}

func TestVoiceWebhookMissingCallSid(t *testing.T) {
	svc := &stubDialogue{}
	r := newTestRouter(svc)

	w := postForm(r, "/voice", url.Values{"From": {"+15551234567"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSpeechSpeaksReply(t *testing.T) {
	svc := &stubDialogue{reply: "We have openings at 09:00, 10:00. Which one works best?"}
	r := newTestRouter(svc)

	w := postForm(r, "/handle_speech", url.Values{
		"CallSid":      {"CA1"},
		"From":         {"+15551234567"},
		"SpeechResult": {"do you have anything tomorrow"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "We have openings at 09:00, 10:00.")
	assert.Contains(t, body, `action="/handle_speech"`, "the reply must gather the next utterance")
	assert.Contains(t, body, "<Hangup>")
	assert.Equal(t, "CA1", svc.lastCall)
	assert.Equal(t, "do you have anything tomorrow", svc.lastUtt)
}

func TestHandleSpeechTurnFailureStillSpeaks(t *testing.T) {
	svc := &stubDialogue{err: assert.AnError}
	r := newTestRouter(svc)

	w := postForm(r, "/handle_speech", url.Values{
		"CallSid":      {"CA1"},
		"From":         {"+15551234567"},
		"SpeechResult": {"hello"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "How else can I assist you?",
		"internal failures never drop the call into silence")
}

func TestCallStatusEvictsCompletedCalls(t *testing.T) {
	svc := &stubDialogue{}
	r := newTestRouter(svc)

	w := postForm(r, "/call_status", url.Values{
		"CallSid":    {"CA1"},
		"CallStatus": {"completed"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"CA1"}, svc.ended)

	// In-progress statuses leave the session alone.
	w = postForm(r, "/call_status", url.Values{
		"CallSid":    {"CA2"},
		"CallStatus": {"in-progress"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"CA1"}, svc.ended)
}

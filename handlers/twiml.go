package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TwiML voice settings matching the telephony transport's synthesis setup.
const (
	twimlVoice    = "Polly.Joanna"
	twimlLanguage = "en-US"
)

// Say is a spoken TwiML verb.
type Say struct {
	Voice    string `xml:"voice,attr"`
	Language string `xml:"language,attr"`
	Text     string `xml:",chardata"`
}

// Gather collects the caller's next speech utterance.
type Gather struct {
	Input         string `xml:"input,attr"`
	Language      string `xml:"language,attr"`
	SpeechTimeout string `xml:"speechTimeout,attr,omitempty"`
	Action        string `xml:"action,attr"`
	Say           *Say   `xml:"Say,omitempty"`
}

// Hangup ends the call.
type Hangup struct{}

// TwiMLResponse is the document returned to the telephony webhook. Verb
// order follows field order.
type TwiMLResponse struct {
	XMLName xml.Name `xml:"Response"`
	Gather  *Gather  `xml:"Gather,omitempty"`
	Say     *Say     `xml:"Say,omitempty"`
	Hangup  *Hangup  `xml:"Hangup,omitempty"`
}

func say(text string) *Say {
	return &Say{Voice: twimlVoice, Language: twimlLanguage, Text: text}
}

func gatherSpeech(text string) *Gather {
	return &Gather{
		Input:         "speech",
		Language:      twimlLanguage,
		SpeechTimeout: "auto",
		Action:        "/handle_speech",
		Say:           say(text),
	}
}

func renderTwiML(c *gin.Context, resp TwiMLResponse) {
	body, err := xml.Marshal(resp)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render TwiML")
		return
	}
	c.Data(http.StatusOK, "text/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

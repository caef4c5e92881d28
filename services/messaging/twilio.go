package messaging

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"frontdesk/utils"

	"go.uber.org/zap"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioMessenger sends SMS through the Twilio REST API.
type TwilioMessenger struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	baseURL    string
}

// NewTwilioMessenger returns a Messenger backed by Twilio.
func NewTwilioMessenger(accountSID, authToken, fromNumber string) *TwilioMessenger {
	return &TwilioMessenger{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    twilioAPIBase,
	}
}

// SendSMS posts a message to Twilio's Messages endpoint.
func (m *TwilioMessenger) SendSMS(ctx context.Context, toPhone, body string) error {
	logger := utils.GetLogger()

	form := url.Values{}
	form.Set("To", toPhone)
	form.Set("From", m.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", m.baseURL, m.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build Twilio request: %w", err)
	}
	req.SetBasicAuth(m.accountSID, m.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("Twilio returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.String("to", toPhone))
		return fmt.Errorf("twilio send failed with status %d", resp.StatusCode)
	}

	logger.Debug("SMS sent", zap.String("to", toPhone))
	return nil
}

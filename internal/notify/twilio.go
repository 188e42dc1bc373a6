package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioConfig carries the Twilio credentials and sender identities.
// PhoneNumber is the SMS sender, WhatsAppNumber the WhatsApp sender (the
// sandbox number during testing).
type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
	// BaseURL overrides the Twilio API endpoint, for tests.
	BaseURL string
}

// TwilioSender delivers SMS and WhatsApp messages through the Twilio
// Messages REST API.
type TwilioSender struct {
	cfg    TwilioConfig
	client *http.Client
}

// NewTwilioSender builds a sender. Credentials are not checked here;
// missing configuration surfaces as a config DeliveryError on Send so the
// service can boot without a messaging setup.
func NewTwilioSender(cfg TwilioConfig) *TwilioSender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTwilioBaseURL
	}
	return &TwilioSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send implements Sender.
func (s *TwilioSender) Send(ctx context.Context, channel Channel, to, body string) (string, error) {
	if s.cfg.AccountSID == "" || s.cfg.AuthToken == "" {
		return "", &DeliveryError{Kind: DeliveryConfig, Message: "twilio credentials not configured"}
	}

	var from string
	switch channel {
	case ChannelSMS:
		from = s.cfg.PhoneNumber
		if from == "" {
			return "", &DeliveryError{Kind: DeliveryConfig, Message: "twilio phone number not configured"}
		}
	case ChannelWhatsApp:
		from = s.cfg.WhatsAppNumber
		if from == "" {
			return "", &DeliveryError{Kind: DeliveryConfig, Message: "twilio whatsapp number not configured"}
		}
		from = "whatsapp:" + from
		to = "whatsapp:" + to
	default:
		return "", &DeliveryError{Kind: DeliveryConfig, Message: fmt.Sprintf("unsupported channel %q", channel)}
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimSuffix(s.cfg.BaseURL, "/"), s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &DeliveryError{Kind: DeliveryTransport, Message: "failed to build request", cause: err}
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &DeliveryError{Kind: DeliveryTransport, Message: "request failed", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &DeliveryError{Kind: DeliveryTransport, Message: "failed to read response", cause: err}
	}

	// 401/403 mean the configured identity was rejected; anything else
	// non-2xx is treated as transient.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &DeliveryError{Kind: DeliveryConfig, Message: fmt.Sprintf("twilio rejected the credentials: %s", trimBody(raw))}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &DeliveryError{Kind: DeliveryTransport, Message: fmt.Sprintf("twilio returned %d: %s", resp.StatusCode, trimBody(raw))}
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(raw, &result); err != nil || result.SID == "" {
		return "", &DeliveryError{Kind: DeliveryTransport, Message: "twilio response had no message sid", cause: err}
	}
	return result.SID, nil
}

func trimBody(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}

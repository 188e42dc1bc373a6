package notify_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liviin/homecare-api/internal/notify"
)

func testConfig(baseURL string) notify.TwilioConfig {
	return notify.TwilioConfig{
		AccountSID:     "AC00000000000000000000000000000000",
		AuthToken:      "secret",
		PhoneNumber:    "+15550001111",
		WhatsAppNumber: "+15550002222",
		BaseURL:        baseURL,
	}
}

// TestSendSMSSuccess verifies the form fields and the parsed message sid.
func TestSendSMSSuccess(t *testing.T) {
	var gotTo, gotFrom, gotBody string
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if user, pass, ok := r.BasicAuth(); !ok || user != "AC00000000000000000000000000000000" || pass != "secret" {
			t.Errorf("Expected basic auth credentials, got %s:%s", user, pass)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SM42"}`))
	}))
	defer server.Close()

	sender := notify.NewTwilioSender(testConfig(server.URL))
	sid, err := sender.Send(context.Background(), notify.ChannelSMS, "+15553334444", "filter is due")
	if err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	if sid != "SM42" {
		t.Errorf("Expected sid SM42, got %s", sid)
	}
	if gotPath != "/2010-04-01/Accounts/AC00000000000000000000000000000000/Messages.json" {
		t.Errorf("Unexpected request path %s", gotPath)
	}
	if gotTo != "+15553334444" || gotFrom != "+15550001111" || gotBody != "filter is due" {
		t.Errorf("Unexpected form values to=%s from=%s body=%s", gotTo, gotFrom, gotBody)
	}
}

// TestSendWhatsAppPrefixesAddresses verifies both addresses carry the
// whatsapp: scheme.
func TestSendWhatsAppPrefixesAddresses(t *testing.T) {
	var gotTo, gotFrom string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		w.Write([]byte(`{"sid": "SM43"}`))
	}))
	defer server.Close()

	sender := notify.NewTwilioSender(testConfig(server.URL))
	if _, err := sender.Send(context.Background(), notify.ChannelWhatsApp, "+15553334444", "hello"); err != nil {
		t.Fatalf("Failed to send: %v", err)
	}

	if gotTo != "whatsapp:+15553334444" {
		t.Errorf("Expected whatsapp-prefixed recipient, got %s", gotTo)
	}
	if gotFrom != "whatsapp:+15550002222" {
		t.Errorf("Expected whatsapp-prefixed sender, got %s", gotFrom)
	}
}

// TestSendMissingCredentials verifies the config error is not retryable
// and no request is made.
func TestSendMissingCredentials(t *testing.T) {
	sender := notify.NewTwilioSender(notify.TwilioConfig{})

	_, err := sender.Send(context.Background(), notify.ChannelSMS, "+15553334444", "x")

	var derr *notify.DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("Expected a delivery error, got %v", err)
	}
	if derr.Kind != notify.DeliveryConfig {
		t.Errorf("Expected config kind, got %s", derr.Kind)
	}
	if derr.Retryable() {
		t.Error("Expected config error not to be retryable")
	}
}

// TestSendServerError verifies a 5xx maps to a retryable transport error.
func TestSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream queue full", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sender := notify.NewTwilioSender(testConfig(server.URL))
	_, err := sender.Send(context.Background(), notify.ChannelSMS, "+15553334444", "x")

	var derr *notify.DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("Expected a delivery error, got %v", err)
	}
	if derr.Kind != notify.DeliveryTransport {
		t.Errorf("Expected transport kind, got %s", derr.Kind)
	}
	if !derr.Retryable() {
		t.Error("Expected transport error to be retryable")
	}
}

// TestSendRejectedCredentials verifies a 401 is classified as
// configuration, not transport.
func TestSendRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "authentication failed", http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := notify.NewTwilioSender(testConfig(server.URL))
	_, err := sender.Send(context.Background(), notify.ChannelSMS, "+15553334444", "x")

	var derr *notify.DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("Expected a delivery error, got %v", err)
	}
	if derr.Kind != notify.DeliveryConfig {
		t.Errorf("Expected config kind for rejected credentials, got %s", derr.Kind)
	}
}

// TestSendUnsupportedChannel verifies unknown channels are rejected before
// any request.
func TestSendUnsupportedChannel(t *testing.T) {
	sender := notify.NewTwilioSender(testConfig("http://localhost:0"))

	_, err := sender.Send(context.Background(), notify.Channel("carrier-pigeon"), "+15553334444", "x")

	var derr *notify.DeliveryError
	if !errors.As(err, &derr) || derr.Kind != notify.DeliveryConfig {
		t.Errorf("Expected config error for unsupported channel, got %v", err)
	}
}

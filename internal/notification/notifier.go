// Package notification delivers broker notifications through an external
// push/WhatsApp gateway. Delivery is fire-and-forget; the product works
// without the gateway configured.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"broker_portal_backend/platform/config"
	"broker_portal_backend/platform/logger"
)

const sendTimeout = 10 * time.Second

// Notifier is a thin client for the notification gateway. A nil Notifier is
// valid and drops everything.
type Notifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logger.Logger
}

// NewNotifier builds the gateway client. Returns nil when no gateway URL is
// configured.
func NewNotifier(cfg config.NotifierConfig, log *logger.Logger) *Notifier {
	if cfg.GetNotifierURL() == "" {
		return nil
	}
	return &Notifier{
		baseURL: cfg.GetNotifierURL(),
		apiKey:  cfg.GetNotifierKey(),
		client:  &http.Client{Timeout: sendTimeout},
		log:     log,
	}
}

type sendPayload struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
}

// Send pushes one message through the gateway. Failures are logged, never
// returned; notification delivery must not affect the calling flow.
func (n *Notifier) Send(ctx context.Context, channel, recipient, message, link string) {
	if n == nil {
		return
	}

	body, err := json.Marshal(sendPayload{
		Channel:   channel,
		Recipient: recipient,
		Message:   message,
		Link:      link,
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		n.log.NotificationSent(channel, recipient, false, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("X-API-Key", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.NotificationSent(channel, recipient, false, err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.log.NotificationSent(channel, recipient, false, fmt.Sprintf("gateway returned %d", resp.StatusCode))
		return
	}
	n.log.NotificationSent(channel, recipient, true, "")
}

// Package notify pushes short messages to staff devices through an HTTP relay.
package notify

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"
)

// Sink delivers a notification to one device. Delivery is best effort: Notify
// never blocks the caller and never reports failure.
type Sink interface {
	Notify(token, title, body string)
}

type payload struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// HTTPNotifier POSTs {"token","title","body"} JSON to a relay endpoint.
type HTTPNotifier struct {
	url     string
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPNotifier{url: url, timeout: timeout}
}

// Notify sends in the background. Empty token or unconfigured URL is a no-op.
func (n *HTTPNotifier) Notify(token, title, body string) {
	if n.url == "" || token == "" {
		zlog.Debug().Bool("has_token", token != "").Msg("Notification skipped")
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.Send(token, title, body); err != nil {
			zlog.Warn().Err(err).Str("title", title).Msg("Notification failed")
			return
		}
		zlog.Debug().Str("title", title).Msg("Notification sent")
	}()
}

// Send delivers synchronously and reports the outcome.
func (n *HTTPNotifier) Send(token, title, body string) error {
	agent := fiber.Post(n.url)
	agent.Timeout(n.timeout)
	agent.JSON(payload{Token: token, Title: title, Body: body})
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("error preparing notification request: %w", err)
	}

	code, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending notification: %w", errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("notification relay returned %d: %s", code, resp)
	}
	return nil
}

// Wait blocks until in-flight notifications have finished.
func (n *HTTPNotifier) Wait() {
	n.wg.Wait()
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(string, string, string) {}

package gmailclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends a plain-text email.
// Sends are serialized and spaced at least EMAIL_INTERVAL apart to respect Gmail rate limits.
// Cancelling ctx abandons the wait for the throttle and the API call.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	// Build message outside the lock
	raw, err := buildMessage(c.sender, to, subject, body)
	if err != nil {
		return err
	}

	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	// Wait out the rest of the interval since the previous send
	if !c.lastSendTime.IsZero() {
		if wait := c.interval - time.Since(c.lastSendTime); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("email to %s not sent: %w", to, ctx.Err())
			case <-timer.C:
			}
		}
	}
	// The timer may have raced a cancellation
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("email to %s not sent: %w", to, err)
	}

	_, err = c.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	c.lastSendTime = time.Now()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildMessage renders an RFC 2822 message and encodes it as base64url for the Gmail API
func buildMessage(from, to, subject, body string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", errors.New("recipient is required")
	}
	// Reject header injection
	if strings.ContainsAny(to+from+subject, "\r\n") {
		return "", errors.New("header values must not contain line breaks")
	}

	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	// Plain-text UTF-8 body
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"ecommerceBackend/pkg/config"
	"ecommerceBackend/pkg/logger"

	"github.com/pkg/errors"
	"github.com/pobyzaarif/goshortcute"
)

type MailjetRepository struct {
	cfg    config.MailjetConfig
	client *http.Client
}

func NewMailjetRepository(cfg config.MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type payloadSendEmail struct {
	Messages []message `json:"Messages"`
}

type contact struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type message struct {
	From     contact   `json:"From"`
	To       []contact `json:"To"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
	HTMLPart string    `json:"HTMLPart"`
}

// SendEmail delivers one message through the Mailjet send API. Without a base
// URL configured the message is dropped with a warning.
func (r *MailjetRepository) SendEmail(ctx context.Context, toName, toEmail, subject, body string) error {
	if r.cfg.MailjetBaseUrl == "" {
		logger.Warn("Mailjet not configured, email skipped", "to", toEmail, "subject", subject)
		return nil
	}

	payload := payloadSendEmail{
		Messages: []message{{
			From: contact{
				Email: r.cfg.MailjetSenderEmail,
				Name:  r.cfg.MailjetSenderName,
			},
			To:       []contact{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: body,
			HTMLPart: body,
		}},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal json payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.MailjetBaseUrl+"/v3.1/send", bytes.NewReader(payloadByte))
	if err != nil {
		return errors.Wrap(err, "failed to build mailjet request")
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.cfg.MailjetBasicAuthUsername + ":" + r.cfg.MailjetBasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+basicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call mailjet")
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Error("Mailjet negative response", "status", res.StatusCode, "body", string(bodyBytes))

	return errors.Errorf("mailer service return negative response %v", res.StatusCode)
}

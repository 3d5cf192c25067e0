// Package mail
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.brevo.com"

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlContent string) error
}

// BrevoClient talks to the Brevo transactional email API.
type BrevoClient struct {
	apiKey      string
	senderName  string
	senderEmail string
	baseURL     string
	httpClient  *http.Client
}

func NewBrevoClient(apiKey, senderName, senderEmail string) *BrevoClient {
	return &BrevoClient{
		apiKey:      apiKey,
		senderName:  senderName,
		senderEmail: senderEmail,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type emailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendEmailRequest struct {
	Sender      emailAddress   `json:"sender"`
	To          []emailAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (c *BrevoClient) Send(ctx context.Context, to, subject, htmlContent string) error {
	payload := sendEmailRequest{
		Sender:      emailAddress{Name: c.senderName, Email: c.senderEmail},
		To:          []emailAddress{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", res.StatusCode, detail)
	}

	return nil
}

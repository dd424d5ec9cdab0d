package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/inbucket/html2text"
	"github.com/sandevgo/netnavi/internal/core"
)

// GmailClient is a stateless wrapper over the Gmail v1 REST API for the
// authenticated user's mailbox. No retries, bearer token per call.
type GmailClient struct {
	http *resty.Client
}

func NewGmailClient(baseURL string) *GmailClient {
	return &GmailClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", core.NaviUserAgent),
	}
}

type messagePart struct {
	MimeType string `json:"mimeType"`
	Body     struct {
		Data string `json:"data"` // base64url encoded
	} `json:"body"`
	Parts []messagePart `json:"parts"`
}

type rawMessage struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
	Payload struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
		messagePart
	} `json:"payload"`
}

func (c *GmailClient) ListMessages(ctx context.Context, token, query string, maxResults int) ([]string, error) {
	var out struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"q":          query,
			"maxResults": fmt.Sprintf("%d", maxResults),
		}).
		SetResult(&out).
		Get("/users/me/messages")
	if err != nil {
		return nil, fmt.Errorf("gmail list request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gmail API error: %s", resp.Status())
	}

	ids := make([]string, 0, len(out.Messages))
	for _, m := range out.Messages {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (c *GmailClient) GetMessage(ctx context.Context, token, id string) (core.Email, error) {
	var raw rawMessage

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&raw).
		Get("/users/me/messages/" + id)
	if err != nil {
		return core.Email{}, fmt.Errorf("gmail get request: %w", err)
	}
	if resp.IsError() {
		return core.Email{}, fmt.Errorf("gmail API error: %s", resp.Status())
	}

	email := core.Email{
		ID:      raw.ID,
		Subject: "(No Subject)",
		From:    "(Unknown)",
		Snippet: raw.Snippet,
	}
	for _, h := range raw.Payload.Headers {
		switch h.Name {
		case "Subject":
			email.Subject = h.Value
		case "From":
			email.From = h.Value
		case "Date":
			email.Date = h.Value
		}
	}

	email.Body = decodeBody(raw)
	return email, nil
}

// decodeBody picks the message body: the top-level payload if it has data,
// otherwise the first part carrying data. Falls back to the snippet when
// nothing decodes. HTML bodies are converted to plain text.
func decodeBody(raw rawMessage) string {
	data := raw.Payload.Body.Data
	mime := raw.Payload.MimeType

	if data == "" {
		if part := firstPartWithData(raw.Payload.Parts); part != nil {
			data = part.Body.Data
			mime = part.MimeType
		}
	}
	if data == "" {
		return raw.Snippet
	}

	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return raw.Snippet
	}

	body := string(decoded)
	if strings.HasPrefix(mime, "text/html") {
		if text, err := html2text.FromString(body, html2text.Options{OmitLinks: true}); err == nil {
			body = text
		}
	}
	return body
}

func firstPartWithData(parts []messagePart) *messagePart {
	for i := range parts {
		if parts[i].Body.Data != "" {
			return &parts[i]
		}
		if found := firstPartWithData(parts[i].Parts); found != nil {
			return found
		}
	}
	return nil
}

// SendMessage sends a plain-text reply through the user's mailbox.
func (c *GmailClient) SendMessage(ctx context.Context, token, to, subject, body string) error {
	encSubject := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(subject)))
	msg := strings.Join([]string{
		"To: " + to,
		"Subject: " + encSubject,
		"Content-Type: text/plain; charset=utf-8",
		"MIME-Version: 1.0",
		"",
		body,
	}, "\r\n")

	payload := map[string]string{
		"raw": base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(msg)),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		Post("/users/me/messages/send")
	if err != nil {
		return fmt.Errorf("gmail send request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("gmail API error: %s", resp.Status())
	}
	return nil
}

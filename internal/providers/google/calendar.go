package google

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sandevgo/netnavi/internal/core"
)

const defaultTimeout = 15 * time.Second

// CalendarClient is a stateless wrapper over the Calendar v3 REST API.
// A bearer token is required per call and the client never retries;
// error handling is the dispatcher's job.
type CalendarClient struct {
	http *resty.Client
}

func NewCalendarClient(baseURL string) *CalendarClient {
	return &CalendarClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", core.NaviUserAgent),
	}
}

func (c *CalendarClient) ListEvents(ctx context.Context, token, timeMin, timeMax string) ([]core.CalendarEvent, error) {
	var out struct {
		Items []core.CalendarEvent `json:"items"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"timeMin":      timeMin,
			"timeMax":      timeMax,
			"singleEvents": "true",
			"orderBy":      "startTime",
		}).
		SetResult(&out).
		Get("/calendars/primary/events")
	if err != nil {
		return nil, fmt.Errorf("calendar list request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("calendar API error: %s", resp.Status())
	}

	return out.Items, nil
}

func (c *CalendarClient) CreateEvent(ctx context.Context, token string, event core.CalendarEvent) (core.CalendarEvent, error) {
	var created core.CalendarEvent

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(event).
		SetResult(&created).
		Post("/calendars/primary/events")
	if err != nil {
		return core.CalendarEvent{}, fmt.Errorf("calendar create request: %w", err)
	}
	if resp.IsError() {
		return core.CalendarEvent{}, fmt.Errorf("calendar create error: %s", resp.Status())
	}

	return created, nil
}

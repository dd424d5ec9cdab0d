package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarClient_ListEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendars/primary/events", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "2026-02-01T00:00:00Z", r.URL.Query().Get("timeMin"))
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"id":"ev1","summary":"面接","start":{"dateTime":"2026-02-02T10:00:00+09:00"},"end":{"dateTime":"2026-02-02T11:00:00+09:00"}},
			{"id":"ev2","summary":"終日","start":{"date":"2026-02-03"},"end":{"date":"2026-02-04"}}
		]}`)
	}))
	defer srv.Close()

	client := NewCalendarClient(srv.URL)
	events, err := client.ListEvents(context.Background(), "tok-123", "2026-02-01T00:00:00Z", "2026-02-07T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "面接", events[0].Summary)
	assert.Equal(t, "2026-02-02T10:00:00+09:00", events[0].Start.When())
	// All-day events expose the date form.
	assert.Equal(t, "2026-02-03", events[1].Start.When())
}

func TestCalendarClient_ListEventsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewCalendarClient(srv.URL)
	_, err := client.ListEvents(context.Background(), "expired", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar API error")
}

func TestCalendarClient_CreateEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/calendars/primary/events", r.URL.Path)

		var got core.CalendarEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "会議", got.Summary)
		assert.Equal(t, "2026-02-02T10:00:00+09:00", got.Start.DateTime)

		got.ID = "created-1"
		got.HTMLLink = "https://calendar.google.com/event?eid=abc"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	client := NewCalendarClient(srv.URL)
	created, err := client.CreateEvent(context.Background(), "tok", core.CalendarEvent{
		Summary: "会議",
		Start:   core.EventDateTime{DateTime: "2026-02-02T10:00:00+09:00"},
		End:     core.EventDateTime{DateTime: "2026-02-02T11:00:00+09:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "created-1", created.ID)
	assert.Equal(t, "https://calendar.google.com/event?eid=abc", created.HTMLLink)
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sandevgo/netnavi/internal/config"
	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/internal/service/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponder struct {
	answer  string
	err     error
	gotSess *session.Session
	gotMsg  string
}

func (f *fakeResponder) Respond(ctx context.Context, sess *session.Session, message string) (string, error) {
	f.gotSess = sess
	f.gotMsg = message
	return f.answer, f.err
}

type fakeCalendar struct {
	events  []core.CalendarEvent
	created *core.CalendarEvent
	err     error
}

func (f *fakeCalendar) ListEvents(ctx context.Context, token, timeMin, timeMax string) ([]core.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, token string, event core.CalendarEvent) (core.CalendarEvent, error) {
	if f.err != nil {
		return core.CalendarEvent{}, f.err
	}
	event.ID = "ev1"
	f.created = &event
	return event, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMail struct {
	ids     []string
	emails  map[string]core.Email
	err     error
	sendErr error
	sent    []sentMail
}

func (f *fakeMail) ListMessages(ctx context.Context, token, query string, maxResults int) ([]string, error) {
	return f.ids, f.err
}

func (f *fakeMail) GetMessage(ctx context.Context, token, id string) (core.Email, error) {
	return f.emails[id], nil
}

func (f *fakeMail) SendMessage(ctx context.Context, token, to, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeAnalyzer struct {
	important map[string]bool
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, subject, body, sender string) triage.Verdict {
	return triage.Verdict{
		IsImportant: f.important[subject],
		Category:    triage.CategoryOther,
		Summary:     "summary",
	}
}

type serverFixture struct {
	server    *Server
	responder *fakeResponder
	calendar  *fakeCalendar
	mail      *fakeMail
	sessions  *session.Store
}

func newFixture() *serverFixture {
	f := &serverFixture{
		responder: &fakeResponder{answer: "了解しました。"},
		calendar:  &fakeCalendar{},
		mail:      &fakeMail{},
		sessions:  session.NewStore(time.Hour),
	}
	cfg := &config.ServerConfig{Addr: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second}
	f.server = NewServer(cfg, zerolog.Nop(), f.responder, f.calendar, f.mail,
		&fakeAnalyzer{important: map[string]bool{"面接": true}}, f.sessions)
	return f
}

func (f *serverFixture) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestChat(t *testing.T) {
	t.Run("answers with markdown rendering", func(t *testing.T) {
		f := newFixture()
		f.responder.answer = "**はい**、登録しました。"

		rec := f.do(http.MethodPost, "/chat", `{"message":"予定を入れて"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "**はい**、登録しました。", body["response"])
		assert.Contains(t, body["html"], "<strong>はい</strong>")
		assert.Equal(t, "予定を入れて", f.responder.gotMsg)
		assert.Nil(t, f.responder.gotSess)
	})

	t.Run("empty message is a client error", func(t *testing.T) {
		f := newFixture()
		rec := f.do(http.MethodPost, "/chat", `{"message":"   "}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid JSON is a client error", func(t *testing.T) {
		f := newFixture()
		rec := f.do(http.MethodPost, "/chat", `{message`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("agent failure is a 500 with details", func(t *testing.T) {
		f := newFixture()
		f.responder.err = errors.New("tool loop exceeded")

		rec := f.do(http.MethodPost, "/chat", `{"message":"やあ"}`, "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "Internal Server Error", body["error"])
		assert.Equal(t, "tool loop exceeded", body["details"])
	})

	t.Run("bearer session reaches the agent", func(t *testing.T) {
		f := newFixture()
		sess := f.sessions.Create("ya29.tok")

		rec := f.do(http.MethodPost, "/chat", `{"message":"メール見て"}`, sess.ID)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, f.responder.gotSess)
		assert.Equal(t, "ya29.tok", f.responder.gotSess.AccessToken)
	})
}

func TestCreateSession(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/auth/session", `{"accessToken":"ya29.tok"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	id, ok := decodeBody(t, rec)["sessionId"].(string)
	require.True(t, ok)

	sess, found := f.sessions.Get(id)
	require.True(t, found)
	assert.Equal(t, "ya29.tok", sess.AccessToken)

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/auth/session", `{}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListSchedules(t *testing.T) {
	t.Run("missing params", func(t *testing.T) {
		f := newFixture()
		rec := f.do(http.MethodGet, "/schedule?start=2026-02-01T00:00:00Z", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated soft-fails with an empty list", func(t *testing.T) {
		f := newFixture()
		f.calendar.events = []core.CalendarEvent{{Summary: "hidden"}}

		rec := f.do(http.MethodGet, "/schedule?start=a&end=b", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		schedules, ok := decodeBody(t, rec)["schedules"].([]any)
		require.True(t, ok)
		assert.Empty(t, schedules)
	})

	t.Run("authenticated returns events", func(t *testing.T) {
		f := newFixture()
		f.calendar.events = []core.CalendarEvent{{Summary: "面接"}}
		sess := f.sessions.Create("tok")

		rec := f.do(http.MethodGet, "/schedule?start=a&end=b", "", sess.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		schedules := decodeBody(t, rec)["schedules"].([]any)
		require.Len(t, schedules, 1)
		assert.Equal(t, "面接", schedules[0].(map[string]any)["summary"])
	})
}

func TestCreateSchedule(t *testing.T) {
	body := `{"title":"面接","start":"2026-02-02T10:00:00+09:00","end":"2026-02-02T11:00:00+09:00","category":"job"}`

	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture()
		rec := f.do(http.MethodPost, "/schedule", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, f.calendar.created)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()
		sess := f.sessions.Create("tok")
		rec := f.do(http.MethodPost, "/schedule", `{"title":"x"}`, sess.ID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("creates the event", func(t *testing.T) {
		f := newFixture()
		sess := f.sessions.Create("tok")

		rec := f.do(http.MethodPost, "/schedule", body, sess.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody(t, rec)
		assert.Equal(t, true, resp["success"])
		require.NotNil(t, f.calendar.created)
		assert.Equal(t, "面接", f.calendar.created.Summary)
		assert.Equal(t, "[Category: job]", f.calendar.created.Description)
	})
}

func TestSendReply(t *testing.T) {
	body := `{"to":"hr@example.co.jp","subject":"Re: 面接のご案内","body":"お世話になっております。"}`

	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture()
		rec := f.do(http.MethodPost, "/mail/reply", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, f.mail.sent)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()
		sess := f.sessions.Create("tok")
		rec := f.do(http.MethodPost, "/mail/reply", `{"to":"hr@example.co.jp"}`, sess.ID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, f.mail.sent)
	})

	t.Run("sends the draft", func(t *testing.T) {
		f := newFixture()
		sess := f.sessions.Create("tok")

		rec := f.do(http.MethodPost, "/mail/reply", body, sess.ID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])

		require.Len(t, f.mail.sent, 1)
		assert.Equal(t, "hr@example.co.jp", f.mail.sent[0].to)
		assert.Equal(t, "Re: 面接のご案内", f.mail.sent[0].subject)
		assert.Equal(t, "お世話になっております。", f.mail.sent[0].body)
	})

	t.Run("send failure", func(t *testing.T) {
		f := newFixture()
		f.mail.sendErr = errors.New("quota exceeded")
		sess := f.sessions.Create("tok")

		rec := f.do(http.MethodPost, "/mail/reply", body, sess.ID)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCheckMail(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture()
		rec := f.do(http.MethodPost, "/mail/check", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("triages and keeps important", func(t *testing.T) {
		f := newFixture()
		f.mail.ids = []string{"m1", "m2"}
		f.mail.emails = map[string]core.Email{
			"m1": {ID: "m1", Subject: "面接"},
			"m2": {ID: "m2", Subject: "広告"},
		}
		sess := f.sessions.Create("tok")

		rec := f.do(http.MethodPost, "/mail/check", "", sess.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody(t, rec)
		assert.Equal(t, float64(1), resp["count"])
		emails := resp["importantEmails"].([]any)
		require.Len(t, emails, 1)
		entry := emails[0].(map[string]any)
		assert.Equal(t, "面接", entry["email"].(map[string]any)["subject"])
		assert.NotNil(t, entry["analysis"])
	})
}

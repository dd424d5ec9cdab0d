package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/pkg/conv"
	"github.com/sandevgo/netnavi/pkg/log"
)

// Chat POST /chat
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	answer, err := s.agent.Respond(r.Context(), sessionFromCtx(r.Context()), req.Message)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("chat failed")
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"response": answer,
		"html":     conv.MarkdownToSafeHTML(answer),
	})
}

// CheckMail POST /mail/check
func (s *Server) CheckMail(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromCtx(r.Context())
	if !sess.HasGoogleAccess() {
		writeError(w, r, http.StatusUnauthorized, "Google login required")
		return
	}

	ids, err := s.mail.ListMessages(r.Context(), sess.Token(), "category:primary", 5)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	type checked struct {
		Email    core.Email `json:"email"`
		Analysis any        `json:"analysis"`
	}
	important := make([]checked, 0, len(ids))
	for _, id := range ids {
		email, err := s.mail.GetMessage(r.Context(), sess.Token(), id)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		verdict := s.analyzer.Analyze(r.Context(), email.Subject, email.Body, email.From)
		if !verdict.IsImportant {
			continue
		}
		important = append(important, checked{Email: email, Analysis: verdict})
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":           len(important),
		"importantEmails": important,
	})
}

// SendReply POST /mail/reply
//
// The web client shows the triage replyDraft next to each important email;
// the user edits and confirms, then the draft is sent through here.
func (s *Server) SendReply(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromCtx(r.Context())
	if !sess.HasGoogleAccess() {
		writeError(w, r, http.StatusUnauthorized, "Google login required")
		return
	}

	var req struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.To == "" || req.Subject == "" || req.Body == "" {
		writeError(w, r, http.StatusBadRequest, "to, subject and body are required")
		return
	}

	if err := s.mail.SendMessage(r.Context(), sess.Token(), req.To, req.Subject, req.Body); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("to", req.To).Msg("send reply failed")
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
}

// ListSchedules GET /schedule
func (s *Server) ListSchedules(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, r, http.StatusBadRequest, "start and end are required")
		return
	}

	sess := sessionFromCtx(r.Context())
	if !sess.HasGoogleAccess() {
		// Soft-fail: the web client polls this before login.
		writeJSON(w, r, http.StatusOK, map[string]any{"schedules": []core.CalendarEvent{}})
		return
	}

	events, err := s.calendar.ListEvents(r.Context(), sess.Token(), start, end)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"schedules": events})
}

// CreateSchedule POST /schedule
func (s *Server) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromCtx(r.Context())
	if !sess.HasGoogleAccess() {
		writeError(w, r, http.StatusUnauthorized, "Google login required")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == "" || req.Start == "" || req.End == "" {
		writeError(w, r, http.StatusBadRequest, "title, start and end are required")
		return
	}

	description := req.Description
	if description == "" && req.Category != "" {
		description = "[Category: " + req.Category + "]"
	}

	event, err := s.calendar.CreateEvent(r.Context(), sess.Token(), core.CalendarEvent{
		Summary:     req.Title,
		Description: description,
		Location:    req.Location,
		Start:       core.EventDateTime{DateTime: req.Start},
		End:         core.EventDateTime{DateTime: req.End},
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"event":   event,
	})
}

// CreateSession POST /auth/session
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.AccessToken == "" {
		writeError(w, r, http.StatusBadRequest, "accessToken is required")
		return
	}

	sess := s.sessions.Create(req.AccessToken)
	writeJSON(w, r, http.StatusOK, map[string]string{"sessionId": sess.ID})
}

// Health GET /health
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": core.NaviVersion,
	})
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/pkg/log"
)

const calendarLoginError = "Login required to access Google Calendar."

const addScheduleSchema = `{
  "type": "object",
  "properties": {
    "title": { "type": "string", "description": "予定のタイトル" },
    "start": { "type": "string", "description": "開始日時 (ISO 8601 format, e.g. 2023-12-24T10:00:00)" },
    "end": { "type": "string", "description": "終了日時 (ISO 8601 format, e.g. 2023-12-24T11:00:00)" },
    "category": { "type": "string", "description": "カテゴリ（任意）" }
  },
  "required": ["title", "start", "end"]
}`

// AddSchedule creates a calendar event on the user's primary calendar.
type AddSchedule struct {
	calendar core.Calendar
}

func NewAddSchedule(calendar core.Calendar) *AddSchedule {
	return &AddSchedule{calendar: calendar}
}

func (t *AddSchedule) Declaration() core.FunctionDeclaration {
	return core.FunctionDeclaration{
		Name:        "addSchedule",
		Description: "スケジュールを追加します。ユーザーが日程を指定した場合に呼び出します。",
		Parameters:  json.RawMessage(addScheduleSchema),
	}
}

type addScheduleArgs struct {
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Category string `json:"category"`
}

func (t *AddSchedule) Execute(ctx context.Context, args map[string]any, sess *session.Session) map[string]any {
	if !sess.HasGoogleAccess() {
		return map[string]any{"error": calendarLoginError}
	}

	var in addScheduleArgs
	if errResult := decodeArgs("addSchedule", args, &in); errResult != nil {
		return errResult
	}
	if in.Title == "" || in.Start == "" || in.End == "" {
		return missingArgs("addSchedule", "title/start/end")
	}

	category := in.Category
	if category == "" {
		category = "general"
	}

	event, err := t.calendar.CreateEvent(ctx, sess.Token(), core.CalendarEvent{
		Summary:     in.Title,
		Start:       core.EventDateTime{DateTime: in.Start},
		End:         core.EventDateTime{DateTime: in.End},
		Description: fmt.Sprintf("Created by NetNavi [Category: %s]", category),
	})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("title", in.Title).Msg("calendar create failed")
		return map[string]any{"error": "Failed to create event in Google Calendar"}
	}

	return map[string]any{
		"result":    "Schedule created in Google Calendar",
		"eventLink": event.HTMLLink,
	}
}

const getSchedulesSchema = `{
  "type": "object",
  "properties": {
    "start": { "type": "string", "description": "取得開始日時 (ISO 8601)" },
    "end": { "type": "string", "description": "取得終了日時 (ISO 8601)" }
  },
  "required": ["start", "end"]
}`

// GetSchedules lists events in a time range.
type GetSchedules struct {
	calendar core.Calendar
}

func NewGetSchedules(calendar core.Calendar) *GetSchedules {
	return &GetSchedules{calendar: calendar}
}

func (t *GetSchedules) Declaration() core.FunctionDeclaration {
	return core.FunctionDeclaration{
		Name:        "getSchedules",
		Description: "指定された範囲のスケジュールを取得します。",
		Parameters:  json.RawMessage(getSchedulesSchema),
	}
}

type getSchedulesArgs struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (t *GetSchedules) Execute(ctx context.Context, args map[string]any, sess *session.Session) map[string]any {
	if !sess.HasGoogleAccess() {
		return map[string]any{"error": calendarLoginError}
	}

	var in getSchedulesArgs
	if errResult := decodeArgs("getSchedules", args, &in); errResult != nil {
		return errResult
	}
	if in.Start == "" || in.End == "" {
		return missingArgs("getSchedules", "start/end")
	}

	events, err := t.calendar.ListEvents(ctx, sess.Token(), in.Start, in.End)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("calendar list failed")
		return map[string]any{"error": "Failed to list events"}
	}

	schedules := make([]map[string]any, 0, len(events))
	for _, e := range events {
		schedules = append(schedules, map[string]any{
			"title": e.Summary,
			"start": e.Start.When(),
			"end":   e.End.When(),
		})
	}

	return map[string]any{"schedules": schedules}
}

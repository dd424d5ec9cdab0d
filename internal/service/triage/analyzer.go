package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/pkg/log"
)

const (
	CategoryJobInterview = "job_interview"
	CategoryGradSchool   = "grad_school"
	CategoryOther        = "other"
)

// ScheduleCandidate is a date the email proposes for the user's calendar.
type ScheduleCandidate struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Verdict is the structured judgment for one email. Always well-formed:
// classifier failures produce the safe fallback instead of an error.
type Verdict struct {
	IsImportant       bool               `json:"isImportant"`
	Category          string             `json:"category"`
	Summary           string             `json:"summary"`
	ScheduleCandidate *ScheduleCandidate `json:"scheduleCandidate,omitempty"`
	ReplyDraft        string             `json:"replyDraft,omitempty"`
}

// verdictSchema constrains the model output to the Verdict shape.
var verdictSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "isImportant": { "type": "boolean", "description": "ユーザーにとって重要かどうか（面接、選考、大学院関連など対応が必要なもの）" },
    "category": { "type": "string", "enum": ["job_interview", "grad_school", "other"] },
    "summary": { "type": "string", "description": "メールの要約（1行程度）" },
    "scheduleCandidate": {
      "type": "object",
      "description": "スケジュールに登録すべき候補日程がある場合のみ出力",
      "properties": {
        "title": { "type": "string" },
        "start": { "type": "string", "description": "開始日時 (ISO 8601)" },
        "end": { "type": "string", "description": "終了日時 (ISO 8601)" }
      },
      "required": ["title", "start", "end"]
    },
    "replyDraft": { "type": "string", "description": "返信が必要な場合の返信文案（敬語、ビジネスメール形式）" }
  },
  "required": ["isImportant", "category", "summary"]
}`)

const systemPromptFormat = `あなたは優秀な秘書「NetNavi」です。ユーザーのメールを解析し、必要なアクションを抽出してください。
ユーザーは現在「転職活動」と「大学院進学」を目指しています。これらに関連するメールは特に重要です。

タスク:
1. メールの重要度判定
2. カテゴリ分類
3. スケジュール情報の抽出（もしあれば）
4. 返信案の作成（もし返信が必要なら）

今日の日付: %s (これを基準に日程を計算してください)
`

type Analyzer struct {
	model core.JSONGenerator
	now   func() time.Time
}

func NewAnalyzer(model core.JSONGenerator) *Analyzer {
	return &Analyzer{model: model, now: time.Now}
}

// Analyze classifies a single email. It never returns an error: any call or
// parse failure yields the safe default so a bad email cannot abort the
// enclosing mailbox check.
func (a *Analyzer) Analyze(ctx context.Context, subject, body, sender string) Verdict {
	systemPrompt := fmt.Sprintf(systemPromptFormat, a.now().UTC().Format(time.RFC3339))
	prompt := fmt.Sprintf("Sender: %s\nSubject: %s\nBody:\n%s\n", sender, subject, body)

	raw, err := a.model.GenerateJSON(ctx, systemPrompt, prompt, verdictSchema)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("subject", subject).Msg("failed to analyze email")
		return fallbackVerdict()
	}

	var v Verdict
	if err := json.Unmarshal(raw, &v); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("subject", subject).Msg("failed to parse email analysis")
		return fallbackVerdict()
	}
	return v
}

func fallbackVerdict() Verdict {
	return Verdict{
		IsImportant: false,
		Category:    CategoryOther,
		Summary:     "解析失敗",
	}
}

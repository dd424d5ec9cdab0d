package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/internal/service/triage"
	"github.com/sandevgo/netnavi/pkg/log"
)

const (
	gmailLoginError   = "Failed to access Gmail. User not authenticated."
	defaultMailQuery  = "is:unread category:primary"
	defaultMaxResults = 5
)

const checkGmailSchema = `{
  "type": "object",
  "properties": {
    "query": { "type": "string", "description": "検索クエリ (例: 'is:unread', 'subject:面接', 'from:university', 'category:primary')" },
    "maxResults": { "type": "number", "description": "取得件数 (デフォルト5)" }
  }
}`

// MailAnalyzer classifies one email; implemented by triage.Analyzer.
type MailAnalyzer interface {
	Analyze(ctx context.Context, subject, body, sender string) triage.Verdict
}

// CheckGmail searches the mailbox, fetches each hit, runs triage on it and
// keeps only the important ones.
type CheckGmail struct {
	mail     core.Mail
	analyzer MailAnalyzer
}

func NewCheckGmail(mail core.Mail, analyzer MailAnalyzer) *CheckGmail {
	return &CheckGmail{mail: mail, analyzer: analyzer}
}

func (t *CheckGmail) Declaration() core.FunctionDeclaration {
	return core.FunctionDeclaration{
		Name:        "checkGmail",
		Description: "ユーザーのGmailを確認して、新しいメールや特定のトピックに関するメールを探します。ユーザーから「メール見て」「転職の状況は？」などと聞かれたらこのツールを使ってください。",
		Parameters:  json.RawMessage(checkGmailSchema),
	}
}

type checkGmailArgs struct {
	Query      string  `json:"query"`
	MaxResults float64 `json:"maxResults"` // model sends numbers, not ints
}

func (t *CheckGmail) Execute(ctx context.Context, args map[string]any, sess *session.Session) map[string]any {
	// Credential check happens before any network call.
	if !sess.HasGoogleAccess() {
		return map[string]any{"error": gmailLoginError}
	}

	var in checkGmailArgs
	if errResult := decodeArgs("checkGmail", args, &in); errResult != nil {
		return errResult
	}

	query := in.Query
	if query == "" {
		query = defaultMailQuery
	}
	maxResults := int(in.MaxResults)
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	ids, err := t.mail.ListMessages(ctx, sess.Token(), query, maxResults)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("query", query).Msg("gmail list failed")
		return map[string]any{"error": fmt.Sprintf("Error checking Gmail: %v", err)}
	}

	var important []map[string]any
	for _, id := range ids {
		email, err := t.mail.GetMessage(ctx, sess.Token(), id)
		if err != nil {
			return map[string]any{"error": fmt.Sprintf("Error checking Gmail: %v", err)}
		}

		verdict := t.analyzer.Analyze(ctx, email.Subject, email.Body, email.From)
		if !verdict.IsImportant {
			continue
		}

		entry := map[string]any{
			"subject":  email.Subject,
			"from":     email.From,
			"date":     email.Date,
			"category": verdict.Category,
			"summary":  verdict.Summary,
		}
		if verdict.ScheduleCandidate != nil {
			entry["scheduleCandidate"] = verdict.ScheduleCandidate
		}
		if verdict.ReplyDraft != "" {
			entry["replyDraft"] = verdict.ReplyDraft
		}
		important = append(important, entry)
	}

	if len(important) == 0 {
		return map[string]any{"result": "No important emails found."}
	}

	return map[string]any{
		"result":          fmt.Sprintf("Found %d important email(s)", len(important)),
		"importantEmails": important,
	}
}

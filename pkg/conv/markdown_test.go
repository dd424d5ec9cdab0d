package conv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToSafeHTML(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantContains string
		wantAbsent   string
	}{
		{
			name:         "bold text",
			input:        "明日の予定は **会議** です",
			wantContains: "<strong>会議</strong>",
		},
		{
			name:         "link gets nofollow",
			input:        "[event](https://calendar.google.com/abc)",
			wantContains: `href="https://calendar.google.com/abc"`,
		},
		{
			name:         "script is stripped",
			input:        `hello <script>alert(1)</script>`,
			wantContains: "hello",
			wantAbsent:   "<script>",
		},
		{
			name:         "code block survives",
			input:        "```\nfmt.Println(\"hi\")\n```",
			wantContains: "<code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToSafeHTML(tt.input)
			assert.Contains(t, got, tt.wantContains)
			if tt.wantAbsent != "" {
				assert.False(t, strings.Contains(got, tt.wantAbsent), "output should not contain %q: %s", tt.wantAbsent, got)
			}
		})
	}
}

package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	webPolicy  = bluemonday.UGCPolicy()
)

func init() {
	webPolicy.AllowAttrs("class").OnElements("code")
	webPolicy.RequireNoFollowOnLinks(true)
}

// MarkdownToSafeHTML renders the model's markdown answer into HTML the chat
// client can inject directly.
func MarkdownToSafeHTML(md string) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse([]byte(md)), renderer)

	return string(webPolicy.SanitizeBytes(unsafeHTML))
}

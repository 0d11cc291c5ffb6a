package chat

import (
	"bytes"
	"log"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// md renders assistant replies to HTML for clients that want formatted
// output without shipping a markdown parser.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// renderMarkdown converts a markdown reply to HTML. On renderer failure
// the raw text is still available in the Reply field, so the HTML is
// simply empty.
func renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		log.Printf("chat: rendering reply markdown: %v", err)
		return ""
	}
	return buf.String()
}

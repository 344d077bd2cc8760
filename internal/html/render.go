package html

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Render writes the markup of n to w. Nodes carrying their source text
// are written verbatim; rebuilt tags use double-quoted attribute values
// in declaration order.
func Render(w io.Writer, n Node) error {
	_, err := io.WriteString(w, String(n))
	return err
}

// String returns the markup of n
func String(n Node) string {
	switch n := n.(type) {
	case *StartTag:
		if n.Raw != "" {
			return n.Raw
		}
		return renderStartTag(n)
	case *EndTag:
		if n.Raw != "" {
			return n.Raw
		}
		return "</" + n.Name + ">"
	case *Text:
		return n.Content
	case *CharRef:
		return "&#" + n.Code + ";"
	case *EntityRef:
		return "&" + n.Name + ";"
	case *Comment:
		return rawOr(n.Raw, "<!--"+n.Content+"-->")
	case *Declaration:
		return rawOr(n.Raw, "<!"+n.Content+">")
	case *ProcessingInstruction:
		return rawOr(n.Raw, "<?"+n.Content+">")
	default:
		panic(fmt.Sprintf("html: unknown node type %T", n))
	}
}

func renderStartTag(t *StartTag) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, attr := range t.Attrs.list {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteByte('"')
	}
	if t.SelfClosing {
		b.WriteString(" /")
	}
	b.WriteByte('>')
	return b.String()
}

func rawOr(raw, rendered string) string {
	if raw != "" {
		return raw
	}
	return rendered
}

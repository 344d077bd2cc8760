package html

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Character references are only split out when terminated by ';'.
// Anything else stays inside the surrounding Text node.
var charRefRegex = regexp.MustCompile(`&(?:#([0-9]+|[xX][0-9a-fA-F]+)|([a-zA-Z][a-zA-Z0-9]*));`)

// Elements whose content the tokenizer reads as raw text
var rawTextElements = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"textarea":  true,
	"title":     true,
	"xmp":       true,
}

// Tokenizer produces the Node stream of a document on demand.
// It does no tree construction: tags are reported exactly as they
// appear, with no implied or corrected structure.
type Tokenizer struct {
	z       *html.Tokenizer
	pending []Node
	rawText bool
	err     error
}

// NewTokenizer returns a tokenizer reading markup from r
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{z: html.NewTokenizer(r)}
}

// Next returns the next node. It returns io.EOF once the input is exhausted.
func (t *Tokenizer) Next() (Node, error) {
	for len(t.pending) == 0 {
		if t.err != nil {
			return nil, t.err
		}
		t.advance()
	}

	n := t.pending[0]
	t.pending = t.pending[1:]
	return n, nil
}

// advance reads one token from the underlying tokenizer into pending
func (t *Tokenizer) advance() {
	tt := t.z.Next()

	// Raw must be copied before TagName/TagAttr, which lower-case the buffer in place.
	raw := string(t.z.Raw())

	switch tt {
	case html.ErrorToken:
		err := t.z.Err()
		if err != io.EOF {
			t.err = fmt.Errorf("failed to tokenize HTML: %w", err)
			return
		}
		// a tag cut off by the end of input is kept as text
		if raw != "" {
			t.push(&Text{Content: raw})
		}
		t.err = err
		return

	case html.TextToken:
		if t.rawText {
			t.push(&Text{Content: raw})
		} else {
			t.splitText(raw)
		}
		return

	case html.StartTagToken, html.SelfClosingTagToken:
		tag := t.readStartTag(raw, tt == html.SelfClosingTagToken)
		t.rawText = rawTextElements[tag.Name] && !tag.SelfClosing
		if tag.SelfClosing {
			// <script/> has no body, markup after it is parsed as usual
			t.z.NextIsNotRawText()
		}
		t.push(tag)
		return

	case html.EndTagToken:
		name, _ := t.z.TagName()
		t.push(&EndTag{Name: string(name), Raw: raw})

	case html.CommentToken:
		t.push(classifyComment(raw))

	case html.DoctypeToken:
		t.push(&Declaration{Content: trimDelims(raw, "<!", ">"), Raw: raw})
	}
	t.rawText = false
}

func (t *Tokenizer) push(n Node) {
	t.pending = append(t.pending, n)
}

func (t *Tokenizer) readStartTag(raw string, selfClosing bool) *StartTag {
	name, hasAttr := t.z.TagName()
	tag := &StartTag{
		Name:        string(name),
		SelfClosing: selfClosing,
		Raw:         raw,
	}

	for hasAttr {
		var key, val []byte
		key, val, hasAttr = t.z.TagAttr()
		// duplicates keep the first position and the last value
		tag.Attrs.Set(string(key), string(val))
	}
	return tag
}

// splitText breaks a text run into Text, CharRef and EntityRef nodes
func (t *Tokenizer) splitText(raw string) {
	last := 0
	for _, m := range charRefRegex.FindAllStringSubmatchIndex(raw, -1) {
		if m[0] > last {
			t.push(&Text{Content: raw[last:m[0]]})
		}
		if m[2] >= 0 {
			t.push(&CharRef{Code: raw[m[2]:m[3]]})
		} else {
			t.push(&EntityRef{Name: raw[m[4]:m[5]]})
		}
		last = m[1]
	}
	if last < len(raw) {
		t.push(&Text{Content: raw[last:]})
	}
}

// classifyComment sorts the tokenizer's comment tokens, which include
// bogus comments, into comments, declarations and processing instructions
func classifyComment(raw string) Node {
	switch {
	case strings.HasPrefix(raw, "<!--"):
		return &Comment{Content: trimDelims(raw, "<!--", "-->"), Raw: raw}
	case strings.HasPrefix(raw, "<?"):
		return &ProcessingInstruction{Content: trimDelims(raw, "<?", ">"), Raw: raw}
	case strings.HasPrefix(raw, "<!"):
		return &Declaration{Content: trimDelims(raw, "<!", ">"), Raw: raw}
	default:
		return &Comment{Content: trimDelims(raw, "</", ">"), Raw: raw}
	}
}

func trimDelims(s, open, close string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, open), close)
}

// Tokenize reads the complete node stream of src
func Tokenize(src string) ([]Node, error) {
	t := NewTokenizer(strings.NewReader(src))

	var nodes []Node
	for {
		n, err := t.Next()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

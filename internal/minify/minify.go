package minify

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

// Media types of inlined stylesheets and scripts
const (
	MediaTypeCSS = "text/css"
	MediaTypeJS  = "application/javascript"
)

var jsMediaType = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)

// Minifier shrinks stylesheet and script text
type Minifier struct {
	m *minify.M
}

// New creates a minifier for CSS and JavaScript
func New() *Minifier {
	m := minify.New()
	m.AddFunc(MediaTypeCSS, css.Minify)
	m.AddFuncRegexp(jsMediaType, js.Minify)
	return &Minifier{m: m}
}

// Format minifies text of the given media type. Unsupported media types
// are returned unchanged.
func (m *Minifier) Format(mediaType, text string) (string, error) {
	out, err := m.m.String(mediaType, text)
	if err == minify.ErrNotExist {
		return text, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to minify %s: %w", mediaType, err)
	}
	return out, nil
}

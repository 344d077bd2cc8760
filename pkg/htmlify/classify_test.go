package htmlify

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"htmlify/internal/html"
)

func attrs(pairs ...string) html.Attributes {
	var a html.Attributes
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		attrs    html.Attributes
		expected Action
	}{
		{"script with src", "script", attrs("src", "a.js"), ActionInlineScript},
		{"script with empty src", "script", attrs("src", ""), ActionInlineScript},
		{"script with external src", "script", attrs("src", "https://x/a.js"), ActionRewriteAttrs},
		{"inline script", "script", attrs("type", "module"), ActionRewriteAttrs},
		{"stylesheet link", "link", attrs("rel", "stylesheet", "href", "a.css"), ActionInlineStylesheet},
		{"stylesheet link with src", "link", attrs("src", "x", "rel", "stylesheet", "href", "a.css"), ActionInlineStylesheet},
		{"external stylesheet", "link", attrs("rel", "stylesheet", "href", "http://x/a.css"), ActionRewriteAttrs},
		{"stylesheet without href", "link", attrs("rel", "stylesheet"), ActionRewriteAttrs},
		{"rel case matters", "link", attrs("rel", "Stylesheet", "href", "a.css"), ActionRewriteAttrs},
		{"rel list", "link", attrs("rel", "preload stylesheet", "href", "a.css"), ActionRewriteAttrs},
		{"icon link", "link", attrs("rel", "icon", "href", "i.png"), ActionRewriteAttrs},
		{"img", "img", attrs("src", "a.png"), ActionRewriteAttrs},
		{"style element", "style", attrs("href", "a.css"), ActionRewriteAttrs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.tag, &tt.attrs))
		})
	}
}

func TestResourceAttrs(t *testing.T) {
	assert.Equal(t, []string{"src", "href"}, resourceAttrs("link"))
	assert.Equal(t, []string{"src"}, resourceAttrs("img"))
	assert.Equal(t, []string{"src"}, resourceAttrs("a"))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "inline-script", ActionInlineScript.String())
	assert.Equal(t, "inline-stylesheet", ActionInlineStylesheet.String())
	assert.Equal(t, "rewrite-attrs", ActionRewriteAttrs.String())
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindWriting, Path: "/out.html", Err: cause})

	assert.ErrorIs(t, err, ErrWriting)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrOverwrite)
	assert.Contains(t, err.Error(), "/out.html")
	assert.Contains(t, err.Error(), "permission denied")

	overwrite := &Error{Kind: KindOverwrite, Path: "/out.html"}
	assert.Equal(t, "destination exists and force mode is off: /out.html", overwrite.Error())
	assert.Nil(t, overwrite.Unwrap())

	assert.Equal(t, "resource not found", KindResourceNotFound.String())
}

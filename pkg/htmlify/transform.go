package htmlify

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"htmlify/internal/css"
	"htmlify/internal/html"
	"htmlify/internal/minify"
	"htmlify/internal/resolver"
)

// script type values whose bodies are JavaScript
var javaScriptTypes = map[string]bool{
	"":                         true,
	"module":                   true,
	"text/javascript":          true,
	"application/javascript":   true,
	"application/x-javascript": true,
	"text/ecmascript":          true,
	"application/ecmascript":   true,
}

// Transform inlines the resources referenced by the markup in src.
// Relative references are resolved against baseDir.
func (h *Htmlifier) Transform(src, baseDir string) (string, error) {
	t := &transformer{
		h:   h,
		res: resolver.New(h.fs, baseDir),
		css: css.NewParser(),
	}
	return t.run(src)
}

// transformer holds the state of a single Transform pass
type transformer struct {
	h   *Htmlifier
	res *resolver.Resolver
	css *css.Parser
	out strings.Builder

	// set after an inlined script start tag until its end tag
	skipBody bool
	// original body of the inlined script, kept in case no end tag follows
	skipped strings.Builder
}

func (t *transformer) run(src string) (string, error) {
	tok := html.NewTokenizer(strings.NewReader(src))
	for {
		n, err := tok.Next()
		if err == io.EOF {
			// an unterminated inlined script keeps the input that followed it
			t.out.WriteString(t.skipped.String())
			return t.out.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch n := n.(type) {
		case *html.StartTag:
			if err := t.startTag(n); err != nil {
				return "", err
			}
			continue
		case *html.Text:
			if t.skipBody {
				t.skipped.WriteString(n.Content)
				continue
			}
		case *html.EndTag:
			t.skipBody = false
			t.skipped.Reset()
		}
		if err := html.Render(&t.out, n); err != nil {
			return "", err
		}
	}
}

func (t *transformer) startTag(tag *html.StartTag) error {
	switch Classify(tag.Name, &tag.Attrs) {
	case ActionInlineScript:
		return t.inlineScript(tag)
	case ActionInlineStylesheet:
		return t.inlineStylesheet(tag)
	default:
		return t.rewriteAttrs(tag)
	}
}

// inlineScript emits the script with its src replaced by the file's text
func (t *transformer) inlineScript(tag *html.StartTag) error {
	src, _ := tag.Attrs.Get("src")
	body, path, err := t.readForced(src)
	if err != nil {
		return err
	}

	if scriptType, _ := tag.Attrs.Get("type"); javaScriptTypes[strings.ToLower(strings.TrimSpace(scriptType))] {
		if body, err = t.format(minify.MediaTypeJS, body, path); err != nil {
			return err
		}
	}

	attrs := tag.Attrs.Clone()
	attrs.Delete("src")
	t.out.WriteString(html.String(&html.StartTag{Name: tag.Name, Attrs: attrs}))
	t.out.WriteString(body)
	if tag.SelfClosing {
		t.out.WriteString("</" + tag.Name + ">")
	} else {
		t.skipBody = true
	}

	t.h.log.Debug().Str("path", path).Int("bytes", len(body)).Msg("inlined script")
	return nil
}

// inlineStylesheet replaces the whole link tag with a style element
func (t *transformer) inlineStylesheet(tag *html.StartTag) error {
	href, _ := tag.Attrs.Get("href")
	body, path, err := t.readForced(href)
	if err != nil {
		return err
	}

	if t.h.opts.EmbedCSSURLs {
		if body, err = t.embedCSSURLs(body, filepath.Dir(path)); err != nil {
			return err
		}
	}
	if body, err = t.format(minify.MediaTypeCSS, body, path); err != nil {
		return err
	}

	style := &html.StartTag{Name: "style", Attrs: html.NewAttributes(html.Attribute{Key: "type", Val: minify.MediaTypeCSS})}
	t.out.WriteString(html.String(style))
	t.out.WriteString(body)
	t.out.WriteString(`</style>`)

	t.h.log.Debug().Str("path", path).Int("bytes", len(body)).Msg("inlined stylesheet")
	return nil
}

// rewriteAttrs replaces resource attributes by data URIs where a local file exists
func (t *transformer) rewriteAttrs(tag *html.StartTag) error {
	changed := false
	for _, key := range resourceAttrs(tag.Name) {
		uri, ok := tag.Attrs.Get(key)
		if !ok {
			continue
		}

		res, err := t.res.Resolve(uri)
		if err != nil {
			return classifyResolveError(err, t.res.Locate(uri))
		}
		if res.Kind != resolver.DataURI {
			t.h.log.Debug().Str("tag", tag.Name).Str(key, uri).Msg("reference left as is")
			continue
		}

		tag.Attrs.Set(key, res.URI)
		changed = true
		t.h.log.Debug().Str("tag", tag.Name).Str("path", res.Path).Msg("embedded data URI")
	}

	if changed {
		tag.Raw = ""
	}
	t.out.WriteString(html.String(tag))
	return nil
}

// readForced reads a script or stylesheet that must be inlined.
// Unlike attribute resolution a missing file is an error.
func (t *transformer) readForced(ref string) (string, string, error) {
	path := t.res.Locate(ref)

	exists, err := afero.Exists(t.h.fs, path)
	if err != nil {
		return "", path, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return "", path, &Error{Kind: KindResourceNotFound, Path: path}
	}

	content, err := afero.ReadFile(t.h.fs, path)
	if err != nil {
		return "", path, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), path, nil
}

func (t *transformer) embedCSSURLs(body, dir string) (string, error) {
	r := resolver.New(t.h.fs, dir)
	return t.css.RewriteURLs(body, func(ref string) (string, error) {
		res, err := r.Resolve(ref)
		if err != nil {
			return "", classifyResolveError(err, r.Locate(ref))
		}
		return res.URI, nil
	})
}

func (t *transformer) format(mediaType, body, path string) (string, error) {
	if !t.h.opts.Minify {
		return body, nil
	}
	out, err := t.h.formatter.Format(mediaType, body)
	if err != nil {
		return "", fmt.Errorf("failed to format %s: %w", path, err)
	}
	return out, nil
}

// classifyResolveError lifts resolver failures into the htmlify taxonomy
func classifyResolveError(err error, path string) error {
	switch {
	case errors.Is(err, resolver.ErrUnknownMime):
		return &Error{Kind: KindMime, Path: path, Err: err}
	case errors.Is(err, resolver.ErrEncoded):
		return &Error{Kind: KindEncoding, Path: path, Err: err}
	default:
		return err
	}
}

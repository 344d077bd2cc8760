package css

import (
	"fmt"
	"regexp"
	"strings"
)

// Parser finds resource references in stylesheet text
type Parser struct {
	// url( "x" ), url('x') and url(x)
	urlRegex *regexp.Regexp
	// comments are skipped so commented-out urls are left alone
	commentRegex *regexp.Regexp
}

// NewParser creates a new CSS parser with compiled regexes
func NewParser() *Parser {
	return &Parser{
		urlRegex:     regexp.MustCompile(`(?i)url\(\s*(?:"([^"]*)"|'([^']*)'|([^'")\s]*))\s*\)`),
		commentRegex: regexp.MustCompile(`(?s)/\*.*?\*/`),
	}
}

// FindURLs returns the url() references of cssText in source order
func (p *Parser) FindURLs(cssText string) []URLRef {
	comments := p.commentRegex.FindAllStringIndex(cssText, -1)

	var refs []URLRef
	for _, m := range p.urlRegex.FindAllStringSubmatchIndex(cssText, -1) {
		if insideAny(m[0], comments) {
			continue
		}

		ref := URLRef{Start: m[0], End: m[1]}
		switch {
		case m[2] >= 0:
			ref.URL, ref.Quote = cssText[m[2]:m[3]], `"`
		case m[4] >= 0:
			ref.URL, ref.Quote = cssText[m[4]:m[5]], `'`
		default:
			ref.URL = cssText[m[6]:m[7]]
		}
		refs = append(refs, ref)
	}
	return refs
}

// RewriteURLs replaces each url() reference with the result of resolve.
// Empty, fragment-only and data: references are never passed to resolve.
func (p *Parser) RewriteURLs(cssText string, resolve ResolveFunc) (string, error) {
	refs := p.FindURLs(cssText)
	if len(refs) == 0 {
		return cssText, nil
	}

	var b strings.Builder
	last := 0
	for _, ref := range refs {
		if skipURL(ref.URL) {
			continue
		}

		replacement, err := resolve(ref.URL)
		if err != nil {
			return "", fmt.Errorf("failed to resolve url(%s): %w", ref.URL, err)
		}
		if replacement == ref.URL {
			continue
		}

		b.WriteString(cssText[last:ref.Start])
		b.WriteString("url(")
		b.WriteString(ref.Quote)
		b.WriteString(replacement)
		b.WriteString(ref.Quote)
		b.WriteString(")")
		last = ref.End
	}
	b.WriteString(cssText[last:])

	return b.String(), nil
}

func skipURL(url string) bool {
	return url == "" ||
		strings.HasPrefix(url, "#") ||
		strings.HasPrefix(strings.ToLower(url), "data:")
}

func insideAny(offset int, spans [][]int) bool {
	for _, span := range spans {
		if offset >= span[0] && offset < span[1] {
			return true
		}
	}
	return false
}

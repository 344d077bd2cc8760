package htmlify

import (
	"htmlify/internal/html"
	"htmlify/internal/resolver"
)

// Action is the rewrite applied to a start tag
type Action int

const (
	// ActionRewriteAttrs resolves src (and href on link) to data URIs where possible
	ActionRewriteAttrs Action = iota
	// ActionInlineScript replaces a script's src with the referenced file as its body
	ActionInlineScript
	// ActionInlineStylesheet replaces a stylesheet link with a style element
	ActionInlineStylesheet
)

func (a Action) String() string {
	switch a {
	case ActionRewriteAttrs:
		return "rewrite-attrs"
	case ActionInlineScript:
		return "inline-script"
	case ActionInlineStylesheet:
		return "inline-stylesheet"
	default:
		return "unknown"
	}
}

// Classify picks the rewrite for a start tag. Rules are checked in order:
// a script with src, a link with rel exactly "stylesheet" and an href,
// then everything else. Scripts and stylesheets behind absolute URIs are
// never fetched and fall through to the attribute rule, which leaves them as is.
func Classify(name string, attrs *html.Attributes) Action {
	if name == "script" {
		if src, ok := attrs.Get("src"); ok && !resolver.IsExternal(src) {
			return ActionInlineScript
		}
	}
	if name == "link" {
		rel, _ := attrs.Get("rel")
		href, ok := attrs.Get("href")
		if ok && rel == "stylesheet" && !resolver.IsExternal(href) {
			return ActionInlineStylesheet
		}
	}
	return ActionRewriteAttrs
}

// resourceAttrs lists the attributes of a tag that ActionRewriteAttrs resolves
func resourceAttrs(name string) []string {
	if name == "link" {
		return []string{"src", "href"}
	}
	return []string{"src"}
}

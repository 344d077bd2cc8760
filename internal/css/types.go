package css

// URLRef is one url(...) token found in a stylesheet
type URLRef struct {
	Start int    // byte offset of "url(" in the stylesheet text
	End   int    // byte offset just past the closing ")"
	URL   string // reference with quotes and surrounding whitespace removed
	Quote string // quote character used, empty when unquoted
}

// ResolveFunc maps a url() reference to its replacement
type ResolveFunc func(ref string) (string, error)

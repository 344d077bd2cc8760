package htmlify

import "fmt"

// Kind classifies the errors htmlify reports to its caller
type Kind int

const (
	// KindOverwrite means the destination exists and Force is off
	KindOverwrite Kind = iota + 1
	// KindWriting means the destination cannot be opened or written
	KindWriting
	// KindMime means a local resource's type cannot be inferred from its name
	KindMime
	// KindEncoding means a local resource carries a content encoding
	KindEncoding
	// KindResourceNotFound means a script or stylesheet to inline does not exist
	KindResourceNotFound
)

func (k Kind) String() string {
	switch k {
	case KindOverwrite:
		return "overwrite"
	case KindWriting:
		return "writing"
	case KindMime:
		return "mime"
	case KindEncoding:
		return "encoding"
	case KindResourceNotFound:
		return "resource not found"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; any *Error of the same Kind matches.
var (
	ErrOverwrite        = &Error{Kind: KindOverwrite}
	ErrWriting          = &Error{Kind: KindWriting}
	ErrMime             = &Error{Kind: KindMime}
	ErrEncoding         = &Error{Kind: KindEncoding}
	ErrResourceNotFound = &Error{Kind: KindResourceNotFound}
)

// Error is a classified htmlify failure
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindOverwrite:
		msg = "destination exists and force mode is off"
	case KindWriting:
		msg = "destination cannot be opened for writing, check your permissions"
	case KindMime:
		msg = "cannot guess the mime type of resource"
	case KindEncoding:
		msg = "resource is encoded, encoded files are not supported"
	case KindResourceNotFound:
		msg = "resource to inline does not exist"
	default:
		msg = "htmlify error"
	}

	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

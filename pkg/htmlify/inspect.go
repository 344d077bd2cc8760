package htmlify

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"htmlify/internal/html"
	"htmlify/internal/resolver"
)

// Status tells where a reference points
type Status int

const (
	StatusExternal Status = iota // absolute URI, never fetched
	StatusLocal                  // existing local file
	StatusMissing                // no local file by that name
)

func (s Status) String() string {
	switch s {
	case StatusExternal:
		return "external"
	case StatusLocal:
		return "local"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Reference is a resource reference reported by Inspect
type Reference struct {
	Tag    string
	Attr   string
	URI    string
	Path   string // local path, empty for external references
	Action Action
	Status Status
}

// Inspect lists the resource references of input and what Htmlify would
// do with each, without reading the resources or writing anything.
func (h *Htmlifier) Inspect(input string) ([]Reference, error) {
	content, err := afero.ReadFile(h.fs, input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", input, err)
	}

	elements, err := html.Scan(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	res := resolver.New(h.fs, filepath.Dir(input))

	var refs []Reference
	for _, el := range elements {
		action := Classify(el.Name, &el.Attrs)

		var keys []string
		switch action {
		case ActionInlineScript:
			keys = []string{"src"}
		case ActionInlineStylesheet:
			keys = []string{"href"}
		default:
			keys = resourceAttrs(el.Name)
		}

		for _, key := range keys {
			uri, ok := el.Attrs.Get(key)
			if !ok {
				continue
			}

			ref := Reference{Tag: el.Name, Attr: key, URI: uri, Action: action}
			switch {
			case resolver.IsExternal(uri):
				ref.Status = StatusExternal
			case res.IsLocalFile(uri):
				ref.Status = StatusLocal
				ref.Path = res.Locate(uri)
			default:
				ref.Status = StatusMissing
				ref.Path = res.Locate(uri)
			}
			refs = append(refs, ref)
		}
	}

	h.log.Debug().Str("input", input).Int("references", len(refs)).Msg("inspected document")
	return refs, nil
}

package resolver

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

var (
	// ErrUnknownMime is returned when a local resource's type cannot be guessed from its name
	ErrUnknownMime = errors.New("cannot guess mime type")

	// ErrEncoded is returned when a local resource carries a content encoding (gzip, bzip2, ...)
	ErrEncoded = errors.New("encoded resources are not supported")
)

// absoluteURI matches references that must never touch the filesystem
var absoluteURI = regexp.MustCompile(`(?i)^(https?|ftps?|file|mailto|gopher)(://|:)`)

// Kind tells what a reference resolved to
type Kind int

const (
	// Passthrough means the reference is kept as written
	Passthrough Kind = iota
	// DataURI means the reference was replaced by an embedded data URI
	DataURI
)

func (k Kind) String() string {
	switch k {
	case Passthrough:
		return "passthrough"
	case DataURI:
		return "data-uri"
	default:
		return "unknown"
	}
}

// Resolved is the outcome of resolving one reference
type Resolved struct {
	Kind Kind
	URI  string // original reference or data URI
	Path string // local path the reference pointed at, empty for external references
}

// Resolver maps resource references found in a document to data URIs.
// It is anchored at a base directory and holds no other state, so a
// single Resolver may be shared by concurrent transformations.
type Resolver struct {
	fs      afero.Fs
	baseDir string
}

// New creates a resolver for references relative to baseDir
func New(fs afero.Fs, baseDir string) *Resolver {
	return &Resolver{
		fs:      fs,
		baseDir: baseDir,
	}
}

// IsExternal reports whether uri is an absolute URI with a known scheme
func IsExternal(uri string) bool {
	return absoluteURI.MatchString(uri)
}

// Locate joins the base directory and uri. Absolute paths are used as-is.
func (r *Resolver) Locate(uri string) string {
	if filepath.IsAbs(uri) {
		return filepath.Clean(uri)
	}
	return filepath.Join(r.baseDir, uri)
}

// IsLocalFile reports whether uri names an existing regular file under the base directory
func (r *Resolver) IsLocalFile(uri string) bool {
	if IsExternal(uri) {
		return false
	}
	info, err := r.fs.Stat(r.Locate(uri))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Resolve turns uri into a data URI when it names a local regular file.
// External references and references to missing files are passed through unchanged.
func (r *Resolver) Resolve(uri string) (Resolved, error) {
	if !r.IsLocalFile(uri) {
		return Resolved{Kind: Passthrough, URI: uri}, nil
	}

	path := r.Locate(uri)
	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType, encoding := GuessType(path)
	if mimeType == "" {
		return Resolved{}, fmt.Errorf("%w: %s", ErrUnknownMime, path)
	}
	if encoding != "" {
		return Resolved{}, fmt.Errorf("%w: %s is %s-encoded", ErrEncoded, path, encoding)
	}

	return Resolved{
		Kind: DataURI,
		URI:  EncodeDataURI(mimeType, content),
		Path: path,
	}, nil
}

// EncodeDataURI renders content as an RFC 2397 base64 data URI
func EncodeDataURI(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

package htmlify

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"htmlify/internal/config"
)

// Formatter rewrites the text of an inlined script or stylesheet before it
// is placed in the document. mediaType is minify.MediaTypeCSS or minify.MediaTypeJS.
type Formatter interface {
	Format(mediaType, text string) (string, error)
}

type identityFormatter struct{}

func (identityFormatter) Format(_, text string) (string, error) {
	return text, nil
}

// Htmlifier squeezes an HTML page and the local resources it references
// into one self-contained HTML file. Its settings are fixed at construction,
// and runs share no mutable state.
type Htmlifier struct {
	opts      config.Options
	fs        afero.Fs
	log       zerolog.Logger
	formatter Formatter
}

// Option customizes an Htmlifier
type Option func(*Htmlifier)

// WithFs sets the filesystem all resources are read from and written to
func WithFs(fs afero.Fs) Option {
	return func(h *Htmlifier) {
		h.fs = fs
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(h *Htmlifier) {
		h.log = log
	}
}

// WithFormatter sets the formatter applied to inlined bodies when
// Options.Minify is set
func WithFormatter(f Formatter) Option {
	return func(h *Htmlifier) {
		h.formatter = f
	}
}

// New creates an Htmlifier with the given options
func New(opts config.Options, with ...Option) *Htmlifier {
	h := &Htmlifier{
		opts:      opts,
		fs:        afero.NewOsFs(),
		log:       zerolog.Nop(),
		formatter: identityFormatter{},
	}
	for _, fn := range with {
		fn(h)
	}
	return h
}

// NewWithDefaults creates an Htmlifier with default options on the OS filesystem
func NewWithDefaults() *Htmlifier {
	return New(config.Default())
}

// Options returns the settings of h
func (h *Htmlifier) Options() config.Options {
	return h.opts
}

// Htmlify reads input, inlines its resources and writes the result to output.
// The output file is only opened once the whole document has been transformed.
func (h *Htmlifier) Htmlify(input, output string) error {
	exists, err := afero.Exists(h.fs, output)
	if err != nil {
		return fmt.Errorf("failed to check destination %s: %w", output, err)
	}
	if exists && !h.opts.Force {
		return &Error{Kind: KindOverwrite, Path: output}
	}

	content, err := afero.ReadFile(h.fs, input)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", input, err)
	}

	doc, err := h.Transform(string(content), filepath.Dir(input))
	if err != nil {
		return err
	}

	if h.opts.AddLicenseBanner {
		doc = LicenseBanner + doc
	}

	if err := h.write(output, doc); err != nil {
		return err
	}

	h.log.Debug().Str("input", input).Str("output", output).Int("bytes", len(doc)).Msg("wrote document")
	return nil
}

func (h *Htmlifier) write(output, doc string) error {
	f, err := h.fs.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &Error{Kind: KindWriting, Path: output, Err: err}
	}

	if _, err := f.WriteString(doc); err != nil {
		f.Close()
		return &Error{Kind: KindWriting, Path: output, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Kind: KindWriting, Path: output, Err: err}
	}
	return nil
}

// Command htmlify squeezes all resources an HTML page needs into one big HTML file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"htmlify/internal/config"
	"htmlify/internal/logging"
	"htmlify/internal/minify"
	"htmlify/pkg/htmlify"
)

const version = "1.0"

// Exit statuses
const (
	exitOK        = 0
	exitOverwrite = 1
	exitUsage     = 2
	exitFatal     = 5
	exitIO        = 6
)

// usageError marks bad invocations, reported before any file is touched
type usageError struct {
	err error
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, afero.NewOsFs()))
}

// run executes the command line and returns the process exit status
func run(args []string, stdout, stderr io.Writer, fs afero.Fs) int {
	root := newRootCmd(stdout, stderr, fs)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var uerr usageError
	var herr *htmlify.Error
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, "%s\n\nhtmlify: error: %v\n", root.UsageString(), uerr.err)
		return exitUsage
	case errors.As(err, &herr) && herr.Kind == htmlify.KindOverwrite:
		fmt.Fprintf(stderr, "htmlify: error: %s exists. Use -f to overwrite.\n", herr.Path)
		return exitOverwrite
	case herr != nil:
		fmt.Fprintf(stderr, "Fatal error. %v\n", err)
		return exitFatal
	default:
		fmt.Fprintf(stderr, "htmlify: unrecoverable error: %v\n", err)
		return exitIO
	}
}

func newRootCmd(stdout, stderr io.Writer, fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:   "htmlify [options] input output",
		Short: "Squeeze all resources an HTML page needs into one big HTML file",
		Long: `Htmlify squeezes all resources an HTML page needs into one big HTML file.

Scripts and stylesheets are inlined, other local files referenced by src
(and href on link elements) become data URIs. Absolute URIs are left alone.`,
		Version:       version,
		Args:          exactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHtmlifier(cmd, stderr, fs)
			if err != nil {
				return err
			}
			return h.Htmlify(args[0], args[1])
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("htmlify {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newInspectCmd(stdout, stderr, fs))
	return root
}

func newInspectCmd(stdout, stderr io.Writer, fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect input",
		Short: "List the resources htmlify would inline, without writing anything",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHtmlifier(cmd, stderr, fs)
			if err != nil {
				return err
			}

			refs, err := h.Inspect(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TAG\tATTR\tACTION\tSTATUS\tURI")
			for _, ref := range refs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ref.Tag, ref.Attr, ref.Action, ref.Status, ref.URI)
			}
			return w.Flush()
		},
	}
}

func newHtmlifier(cmd *cobra.Command, stderr io.Writer, fs afero.Fs) (*htmlify.Htmlifier, error) {
	opts, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	log := logging.New(stderr, opts.Verbose)
	log.Debug().Interface("options", opts).Msg("starting")

	return htmlify.New(opts,
		htmlify.WithFs(fs),
		htmlify.WithLogger(log),
		htmlify.WithFormatter(minify.New()),
	), nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{err: fmt.Errorf("you must specify %d arguments, got %d", n, len(args))}
		}
		return nil
	}
}

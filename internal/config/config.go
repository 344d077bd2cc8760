package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. HTMLIFY_FORCE=1
const EnvPrefix = "HTMLIFY"

// Flag names shared by the CLI and Load
const (
	FlagForce        = "force"
	FlagLicense      = "license"
	FlagMinify       = "minify"
	FlagEmbedCSSURLs = "embed-css-urls"
	FlagVerbose      = "verbose"
)

// Options holds the settings of one htmlify run. It is passed by value
// and never modified after construction.
type Options struct {
	// Force permits overwriting an existing output file
	Force bool

	// AddLicenseBanner prepends the GPLv3 comment block to the output
	AddLicenseBanner bool

	// Minify runs inlined script and stylesheet bodies through the minifier
	Minify bool

	// EmbedCSSURLs turns url() references inside inlined stylesheets into data URIs
	EmbedCSSURLs bool

	// Verbose enables debug logging
	Verbose bool
}

// Default returns the options used when nothing is specified
func Default() Options {
	return Options{}
}

// RegisterFlags adds the option flags to flags
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := Default()
	flags.BoolP(FlagForce, "f", defaults.Force, "Overwrite files.")
	flags.BoolP(FlagLicense, "l", defaults.AddLicenseBanner, "Prepend the GPLv3 license banner to the output.")
	flags.BoolP(FlagMinify, "m", defaults.Minify, "Minify inlined scripts and stylesheets.")
	flags.Bool(FlagEmbedCSSURLs, defaults.EmbedCSSURLs, "Embed url() references of inlined stylesheets as data URIs.")
	flags.BoolP(FlagVerbose, "v", defaults.Verbose, "Verbose logging on stderr.")
}

// Load builds Options from parsed flags, falling back to HTMLIFY_*
// environment variables for flags that were not given
func Load(flags *pflag.FlagSet) (Options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return Options{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	return Options{
		Force:            v.GetBool(FlagForce),
		AddLicenseBanner: v.GetBool(FlagLicense),
		Minify:           v.GetBool(FlagMinify),
		EmbedCSSURLs:     v.GetBool(FlagEmbedCSSURLs),
		Verbose:          v.GetBool(FlagVerbose),
	}, nil
}

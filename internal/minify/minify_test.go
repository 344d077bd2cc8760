package minify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCSS(t *testing.T) {
	out, err := New().Format(MediaTypeCSS, "body {\n  color: red;\n}\n")
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", out)
}

func TestFormatJS(t *testing.T) {
	out, err := New().Format(MediaTypeJS, "var x = 1;\n\n// comment\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "comment")
	assert.Contains(t, out, "x=1")
	assert.Less(t, len(out), len("var x = 1;\n\n// comment\n"))
}

func TestFormatUnknownMediaType(t *testing.T) {
	out, err := New().Format("text/x-template", "  {{ keep }}  ")
	require.NoError(t, err)
	assert.Equal(t, "  {{ keep }}  ", out)
}

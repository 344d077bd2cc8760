package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	doc := `<html><head>
<link rel="stylesheet" href="a.css" media="print">
<link rel="icon" href="i.png">
<script src="a.js"></script>
<script>inline()</script>
</head><body>
<img src="x.png" alt="x">
<a href="y.html">y</a>
<iframe src="f.html"></iframe>
</body></html>`

	elements, err := Scan(strings.NewReader(doc))
	require.NoError(t, err)

	var names []string
	for _, el := range elements {
		names = append(names, el.Name)
	}
	assert.Equal(t, []string{"link", "link", "script", "img", "iframe"}, names)

	assert.Equal(t, []Attribute{
		{Key: "rel", Val: "stylesheet"},
		{Key: "href", Val: "a.css"},
		{Key: "media", Val: "print"},
	}, elements[0].Attrs.All())

	src, ok := elements[3].Attrs.Get("src")
	assert.True(t, ok)
	assert.Equal(t, "x.png", src)
}

func TestScanNoReferences(t *testing.T) {
	elements, err := Scan(strings.NewReader(`<p>nothing <a href="x">here</a></p>`))
	require.NoError(t, err)
	assert.Empty(t, elements)
}

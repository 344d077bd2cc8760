package css

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindURLs(t *testing.T) {
	p := NewParser()
	css := `body{background:url(bg.png)} .a{background:URL( "a b.png" )} /* url(old.png) */ .b{src:url('f.woff2')} .c{x:url()}`

	refs := p.FindURLs(css)
	require.Len(t, refs, 4)

	assert.Equal(t, "bg.png", refs[0].URL)
	assert.Equal(t, "", refs[0].Quote)
	assert.Equal(t, "url(bg.png)", css[refs[0].Start:refs[0].End])

	assert.Equal(t, "a b.png", refs[1].URL)
	assert.Equal(t, `"`, refs[1].Quote)

	assert.Equal(t, "f.woff2", refs[2].URL)
	assert.Equal(t, "'", refs[2].Quote)

	assert.Equal(t, "", refs[3].URL)
}

func TestRewriteURLs(t *testing.T) {
	p := NewParser()
	css := `a{b:url(x.png)} c{d:url("http://e/f.png")} g{h:url('#frag')} i{j:url(data:image/png;base64,AA)} k{l:url( "y.png" )}`

	var seen []string
	out, err := p.RewriteURLs(css, func(ref string) (string, error) {
		seen = append(seen, ref)
		switch ref {
		case "x.png":
			return "data:image/png;base64,eA==", nil
		case "y.png":
			return "data:image/png;base64,eQ==", nil
		}
		return ref, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"x.png", "http://e/f.png", "y.png"}, seen)
	assert.Equal(t,
		`a{b:url(data:image/png;base64,eA==)} c{d:url("http://e/f.png")} g{h:url('#frag')} i{j:url(data:image/png;base64,AA)} k{l:url("data:image/png;base64,eQ==")}`,
		out)
}

func TestRewriteURLsNoReferences(t *testing.T) {
	out, err := NewParser().RewriteURLs("body{color:red}", func(string) (string, error) {
		t.Fatal("resolve must not be called")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", out)
}

func TestRewriteURLsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewParser().RewriteURLs("a{b:url(x.png)}", func(string) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "url(x.png)")
}

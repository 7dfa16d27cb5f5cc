package handler

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ClonesLayoutPerPage(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "layout"}}<main>{{template "content" .}}</main>{{end}}`)},
		"one.html":    {Data: []byte(`{{define "content"}}one {{.}}{{end}}`)},
		"two.html":    {Data: []byte(`{{define "content"}}two {{year}}{{end}}`)},
	}

	r, err := NewRenderer(fsys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "one", "x"))
	assert.Equal(t, "<main>one x</main>", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "two", nil))
	assert.Contains(t, buf.String(), "<main>two 20")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "layout"}}{{end}}`)},
	}

	r, err := NewRenderer(fsys)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, r.Render(&buf, "missing", nil))
	assert.Zero(t, buf.Len())
}

func TestRenderer_MissingLayout(t *testing.T) {
	_, err := NewRenderer(fstest.MapFS{"page.html": {Data: []byte(`x`)}})
	assert.Error(t, err)
}

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("renders headings and emphasis", func(t *testing.T) {
		t.Parallel()
		out, err := RenderMarkdown([]byte("## Hello\n\nSome *text*.\n"))
		require.NoError(t, err)
		assert.Contains(t, string(out), "<h2")
		assert.Contains(t, string(out), "<em>text</em>")
	})

	t.Run("strips script tags", func(t *testing.T) {
		t.Parallel()
		out, err := RenderMarkdown([]byte("hi <script>alert(1)</script> there"))
		require.NoError(t, err)
		assert.NotContains(t, string(out), "<script")
		assert.NotContains(t, string(out), "alert(1)")
	})

	t.Run("strips event handlers", func(t *testing.T) {
		t.Parallel()
		out, err := RenderMarkdown([]byte(`<img src="x.png" onerror="alert(1)">`))
		require.NoError(t, err)
		assert.NotContains(t, string(out), "onerror")
	})

	t.Run("hardens external links", func(t *testing.T) {
		t.Parallel()
		out, err := RenderMarkdown([]byte("[site](https://example.com)"))
		require.NoError(t, err)
		assert.Contains(t, string(out), `target="_blank"`)
		assert.Contains(t, string(out), "noreferrer")
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	upper := TransformerFunc(func(input []byte) ([]byte, error) {
		return append(input, '!'), nil
	})
	out, err := Chain(upper, upper).Transform([]byte("hey"))
	require.NoError(t, err)
	assert.Equal(t, "hey!!", string(out))
}

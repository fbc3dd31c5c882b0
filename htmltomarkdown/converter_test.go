package htmltomarkdown_test

import (
	"testing"

	"github.com/snoolib/snoo"
	"github.com/snoolib/snoo/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements snoo.Converter at compile time.
var _ snoo.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts a comment body paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>At this point it feels like an annual tradition.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "At this point it feels like an annual tradition.")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="https://old.reddit.com/r/Games/">the subreddit</a> rules.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[the subreddit](https://old.reddit.com/r/Games/)")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>quoted reply</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> quoted reply")
	})

	t.Run("converts inline code", func(t *testing.T) {
		t.Parallel()

		html := `<p>run <code>nvidia-smi</code> first</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "`nvidia-smi`")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, snoo.EINVALID, snoo.ErrorCode(err))
	})
}

package goquery_test

import (
	"os"
	"strings"
	"testing"

	"github.com/snoolib/snoo"
	snooquery "github.com/snoolib/snoo/goquery"
	"github.com/snoolib/snoo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile("testdata/post.html")
	require.NoError(t, err)
	return string(data)
}

func postRef(t *testing.T) *snoo.ContentRef {
	t.Helper()

	ref, err := snoo.Resolve("https://old.reddit.com/r/Games/comments/1lqa2hj/has_xbox_considered/")
	require.NoError(t, err)
	return ref
}

func TestExtractor_ExtractPost(t *testing.T) {
	t.Parallel()

	t.Run("extracts post metadata", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		post, err := extractor.ExtractPost(loadFixture(t), postRef(t))
		require.NoError(t, err)

		assert.Equal(t, "1lqa2hj", post.ID)
		assert.Equal(t, "Has Xbox Considered Laying One Person Off Instead Of Thousands", post.Title)
		assert.Equal(t, "[deleted]", post.Author)
		assert.Equal(t, "Games", post.Subreddit)
		assert.Equal(t, 8724, post.Score)
		assert.Equal(t, "https://aftermath.site/xbox-layoffs-microsoft-phil-spencer", post.URL)
		assert.Equal(t, "/r/Games/comments/1lqa2hj/has_xbox_considered_laying_one_person_off_instead/", post.Permalink)
		assert.Equal(t, "aftermath.site", post.Domain)
		assert.Equal(t, "Opinion Piece", post.Flair)
		assert.False(t, post.NSFW)
		assert.False(t, post.Spoiler)
		assert.Equal(t, 978, post.NumComments)
	})

	t.Run("extracts post date", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		post, err := extractor.ExtractPost(loadFixture(t), postRef(t))
		require.NoError(t, err)

		assert.Equal(t, 2025, post.CreatedAt.Year())
		assert.Equal(t, 7, int(post.CreatedAt.Month()))
		assert.Equal(t, 2, post.CreatedAt.Day())
	})

	t.Run("returns EEXTRACT for markup without a post", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		_, err := extractor.ExtractPost("<html><body>No post here</body></html>", postRef(t))
		require.Error(t, err)
		assert.Equal(t, snoo.EEXTRACT, snoo.ErrorCode(err))
	})
}

func TestExtractor_ExtractComments(t *testing.T) {
	t.Parallel()

	t.Run("returns records in document order", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)

		var ids []string
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []string{"n113cp2", "n113i94", "n12morx", "n11mod1", "n11rem1"}, ids)
	})

	t.Run("extracts top-level comment", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)
		require.NotEmpty(t, comments)

		first := comments[0]
		assert.Equal(t, "n113cp2", first.ID)
		assert.Equal(t, "1lqa2hj", first.PostID)
		assert.Empty(t, first.ParentID)
		assert.Equal(t, "[deleted]", first.Author)
		assert.Equal(t, 2215, first.Score)
		assert.Equal(t, 0, first.Depth)
		assert.False(t, first.More)
	})

	t.Run("extracts nested reply with parent link", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)
		require.Len(t, comments, 5)

		reply := comments[1]
		assert.Equal(t, "n113i94", reply.ID)
		assert.Equal(t, "n113cp2", reply.ParentID)
		assert.Equal(t, "ComprehensiveArt7725", reply.Author)
		assert.Equal(t, 1, reply.Depth)
		assert.Contains(t, reply.BodyHTML, "annual tradition")
		assert.Equal(t, "At this point it feels like an annual tradition.", reply.BodyText)
	})

	t.Run("extracts load-more stub as placeholder", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)
		require.Len(t, comments, 5)

		stub := comments[2]
		assert.True(t, stub.More)
		assert.Equal(t, "n12morx", stub.ID)
		assert.Equal(t, "n113i94", stub.ParentID)
		assert.Equal(t, 2, stub.Depth)
		assert.Equal(t, "load more comments (3 replies)", stub.BodyText)
	})

	t.Run("extracts distinguished stickied comment", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)
		require.Len(t, comments, 5)

		mod := comments[3]
		assert.Equal(t, "n11mod1", mod.ID)
		assert.Equal(t, "GamesMod", mod.Author)
		assert.True(t, mod.Stickied)
		assert.Equal(t, "moderator", mod.Distinguished)
	})

	t.Run("flags removed comment", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)
		require.Len(t, comments, 5)

		removed := comments[4]
		assert.True(t, removed.Removed)
		assert.Equal(t, "[deleted]", removed.Author)
	})

	t.Run("records feed straight into BuildThread", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)

		thread, err := snoo.BuildThread("1lqa2hj", comments)
		require.NoError(t, err)

		assert.Equal(t, len(comments), thread.Len())
		require.Len(t, thread.Roots, 3)
		assert.Equal(t, "n113cp2", thread.Roots[0].Comment.ID)
		require.Len(t, thread.Roots[0].Children, 1)
		require.Len(t, thread.Roots[0].Children[0].Children, 1)
		assert.True(t, thread.Roots[0].Children[0].Children[0].Comment.More)
	})

	t.Run("converter fills in markdown bodies", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return strings.ToUpper(html), nil
			},
		}

		extractor := snooquery.NewExtractor(snooquery.WithConverter(conv))
		comments, err := extractor.ExtractComments(loadFixture(t), postRef(t))
		require.NoError(t, err)
		require.NotEmpty(t, comments)

		assert.Contains(t, comments[0].BodyMarkdown, "PHIL SPENCER")
	})

	t.Run("returns EEXTRACT for markup without a comment area", func(t *testing.T) {
		t.Parallel()

		extractor := snooquery.NewExtractor()
		_, err := extractor.ExtractComments("<html><body></body></html>", postRef(t))
		require.Error(t, err)
		assert.Equal(t, snoo.EEXTRACT, snoo.ErrorCode(err))
	})
}

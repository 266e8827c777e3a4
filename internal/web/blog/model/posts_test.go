package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEstimateReadingTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		words int
		want  int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
		{1001, 6},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EstimateReadingTime(tc.words), "words=%d", tc.words)
	}
}

func TestMarkPublishedOnce(t *testing.T) {
	t.Parallel()

	post := NewPost()
	require.Equal(t, PostStatusDraft, post.Status)
	require.False(t, post.IsPublished)
	require.Nil(t, post.PublishedAt)

	post.MarkPublished()
	require.Equal(t, PostStatusPublished, post.Status)
	require.True(t, post.IsPublished)
	require.NotNil(t, post.PublishedAt)

	first := *post.PublishedAt

	// archive then republish, the original timestamp survives
	post.Status = PostStatusArchived
	time.Sleep(time.Millisecond)
	post.MarkPublished()
	require.Equal(t, PostStatusPublished, post.Status)
	require.Equal(t, first, *post.PublishedAt)
}

func TestPostStatusValid(t *testing.T) {
	t.Parallel()

	require.True(t, PostStatusDraft.Valid())
	require.True(t, PostStatusPublished.Valid())
	require.True(t, PostStatusArchived.Valid())
	require.False(t, PostStatus("deleted").Valid())
	require.False(t, PostStatus("").Valid())
}

func TestValidCategory(t *testing.T) {
	t.Parallel()

	require.True(t, ValidCategory("technology"))
	require.True(t, ValidCategory("uncategorized"))
	require.False(t, ValidCategory("Technology"))
	require.False(t, ValidCategory("unknown"))
}

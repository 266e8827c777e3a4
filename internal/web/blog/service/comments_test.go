package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-blog-pro/blog-api/internal/web/blog/model"
)

func newTestComment(parent *primitive.ObjectID) *model.Comment {
	c := model.NewComment()
	c.ParentID = parent
	return c
}

func TestBuildCommentTree(t *testing.T) {
	t.Parallel()

	root1 := newTestComment(nil)
	root2 := newTestComment(nil)
	reply1 := newTestComment(&root1.ID)
	reply2 := newTestComment(&root1.ID)
	nested := newTestComment(&reply1.ID)

	tree := buildCommentTree([]*model.Comment{root1, root2, reply1, reply2, nested})

	require.Len(t, tree, 2)
	require.Len(t, root1.Replies, 2)
	require.Len(t, reply1.Replies, 1)
	require.Empty(t, root2.Replies)
}

func TestBuildCommentTreeDropsOrphans(t *testing.T) {
	t.Parallel()

	missing := primitive.NewObjectID()
	root := newTestComment(nil)
	orphan := newTestComment(&missing)

	tree := buildCommentTree([]*model.Comment{root, orphan})
	require.Len(t, tree, 1)
	require.Empty(t, root.Replies)
}

func TestToggleReaction(t *testing.T) {
	t.Parallel()

	ids := toggleReaction(nil, "u1")
	require.Equal(t, []string{"u1"}, ids)

	ids = toggleReaction(ids, "u2")
	require.Equal(t, []string{"u1", "u2"}, ids)

	// toggling again removes
	ids = toggleReaction(ids, "u1")
	require.Equal(t, []string{"u2"}, ids)

	require.Equal(t, []string{"u2"}, removeReaction(ids, "nope"))
	require.Empty(t, removeReaction(ids, "u2"))
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	out := RenderMarkdown([]byte("# Title\n\nsome **bold** text"))
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "<strong>bold</strong>")

	// script tags never survive sanitization
	out = RenderMarkdown([]byte(`hello <script>alert("xss")</script> world`))
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "hello")
}

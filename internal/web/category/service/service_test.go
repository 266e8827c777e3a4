package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-blog-pro/blog-api/internal/web/category/model"
)

func newTestCategory(name string, parent *primitive.ObjectID) *model.Category {
	c := model.NewCategory()
	c.Name = name
	c.Slug = name
	c.ParentID = parent
	return c
}

func TestBuildHierarchy(t *testing.T) {
	t.Parallel()

	root := newTestCategory("tech", nil)
	childA := newTestCategory("golang", &root.ID)
	childB := newTestCategory("rust", &root.ID)
	grand := newTestCategory("gin", &childA.ID)

	// input arrives pre-sorted by order/name, children keep that order
	tree := buildHierarchy([]*model.Category{root, childA, childB, grand})

	require.Len(t, tree, 1)
	require.Equal(t, "tech", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	require.Equal(t, "golang", tree[0].Children[0].Name)
	require.Equal(t, "rust", tree[0].Children[1].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	require.Equal(t, "gin", tree[0].Children[0].Children[0].Name)
	require.Empty(t, tree[0].Children[1].Children)
}

func TestBuildHierarchyEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, buildHierarchy(nil))
	require.Empty(t, buildHierarchy([]*model.Category{}))
}

func TestBuildHierarchyCycle(t *testing.T) {
	t.Parallel()

	// malformed data: a -> b -> a, plus a healthy root above a
	root := newTestCategory("root", nil)
	a := newTestCategory("a", &root.ID)
	b := newTestCategory("b", &a.ID)
	a.ParentID = &b.ID // close the loop, a is no longer under root

	// must terminate; the loop has no root so its nodes are dropped
	tree := buildHierarchy([]*model.Category{root, a, b})
	require.Len(t, tree, 1)
	require.Equal(t, "root", tree[0].Name)
	require.Empty(t, tree[0].Children)
}

func TestBuildHierarchySelfParent(t *testing.T) {
	t.Parallel()

	root := newTestCategory("root", nil)
	selfish := newTestCategory("selfish", nil)
	selfish.ParentID = &selfish.ID

	tree := buildHierarchy([]*model.Category{root, selfish})
	require.Len(t, tree, 1)
	require.Equal(t, "root", tree[0].Name)
}

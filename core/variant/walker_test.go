package variant

import (
	"context"
	"errors"
	"testing"

	"asset-variants/core/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapVisitor(subs map[string]string, seen *[]string) Visitor {
	return func(_ context.Context, ref string) (string, error) {
		*seen = append(*seen, ref)
		return subs[ref], nil
	}
}

func TestWalk(t *testing.T) {
	ctx := context.Background()

	t.Run("NilRoot", func(t *testing.T) {
		changed, err := Walk(ctx, nil, nil)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("DocumentOrder", func(t *testing.T) {
		root := &asset.Node{
			Components: []*asset.Component{{Properties: []*asset.Property{
				{Name: "a", Ref: &asset.Reference{Path: "a"}},
				{Name: "list", Children: []*asset.Property{
					{Ref: &asset.Reference{Path: "b"}},
					{Ref: &asset.Reference{Path: "c"}},
				}},
			}}},
			Children: []*asset.Node{
				{Overrides: []*asset.Property{{Ref: &asset.Reference{Path: "d"}}}},
				nil,
				{Components: []*asset.Component{nil, {Properties: []*asset.Property{nil, {Ref: &asset.Reference{Path: "e"}}}}}},
			},
		}

		var seen []string
		changed, err := Walk(ctx, root, mapVisitor(nil, &seen))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, seen)
	})

	t.Run("WritesOnlyChangedSlots", func(t *testing.T) {
		same := &asset.Reference{Path: "same"}
		moved := &asset.Reference{Path: "old"}
		root := &asset.Node{Components: []*asset.Component{{Properties: []*asset.Property{
			{Ref: same},
			{Ref: moved},
			{Ref: &asset.Reference{}},
			{Value: 3},
		}}}}

		var seen []string
		changed, err := Walk(ctx, root, mapVisitor(map[string]string{"same": "same", "old": "new"}, &seen))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "same", same.Path)
		assert.Equal(t, "new", moved.Path)
		assert.Equal(t, []string{"same", "old"}, seen)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		boom := errors.New("boom")
		root := &asset.Node{Components: []*asset.Component{{Properties: []*asset.Property{
			{Ref: &asset.Reference{Path: "x"}},
			{Ref: &asset.Reference{Path: "y"}},
		}}}}

		calls := 0
		_, err := Walk(ctx, root, func(context.Context, string) (string, error) {
			calls++
			return "", boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})
}

func TestInstanceSources(t *testing.T) {
	root := &asset.Node{
		Source: "Base.prefab",
		Children: []*asset.Node{
			{Source: "A.prefab", Children: []*asset.Node{{Source: "B.prefab"}}},
			{Name: "plain", Children: []*asset.Node{{Source: "A.prefab"}, {Source: "C.prefab"}}},
		},
	}

	assert.Equal(t, []string{"A.prefab", "B.prefab", "C.prefab"}, instanceSources(root))
	assert.Len(t, instanceNodes(root), 4)
	assert.Nil(t, instanceSources(nil))
}

func TestReplaceInstance(t *testing.T) {
	child := &asset.Node{Name: "added"}
	n := &asset.Node{
		Name:      "Enemy (2)",
		Source:    "Assets/Enemy.prefab",
		Transform: asset.Transform{Position: asset.Vector3{X: 4}},
		Overrides: []*asset.Property{{Name: "hp", Value: 3}},
		Children:  []*asset.Node{child},
	}

	replaceInstance(n, &asset.Node{Name: "LowRes_Enemy", Source: "Assets/LowRes/LowRes_Enemy.prefab", Transform: asset.IdentityTransform()})

	assert.Equal(t, "Enemy (2)", n.Name)
	assert.Equal(t, "Assets/LowRes/LowRes_Enemy.prefab", n.Source)
	assert.Equal(t, float64(4), n.Transform.Position.X)
	assert.Len(t, n.Overrides, 1)
	assert.Same(t, child, n.Children[0])
}

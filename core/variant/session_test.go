package variant

import (
	"testing"

	"asset-variants/core/asset"

	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	s := NewSession()
	assert.NotEmpty(t, s.ID())

	src := asset.Asset{Path: "Assets/a.png", Kind: asset.KindTexture}
	s.Put(src, asset.Asset{Path: "Assets/LowRes/LowRes_a.png", Kind: asset.KindTexture})
	s.Put(src, asset.Asset{Path: "other", Kind: asset.KindTexture})

	got, ok := s.Get("Assets/a.png")
	assert.True(t, ok)
	assert.Equal(t, "Assets/LowRes/LowRes_a.png", got.Path)
	assert.Equal(t, 1, s.Len())
	assert.Len(t, s.Mappings(), 1)

	s.MarkProcessed("Assets/p.prefab")
	assert.True(t, s.IsProcessed("Assets/p.prefab"))

	s.begin("Assets/q.prefab", "Assets/LowRes/LowRes_q.prefab")
	dst, ok := s.pending("Assets/q.prefab")
	assert.True(t, ok)
	assert.Equal(t, "Assets/LowRes/LowRes_q.prefab", dst)
	s.end("Assets/q.prefab")
	_, ok = s.pending("Assets/q.prefab")
	assert.False(t, ok)

	s.count(asset.KindTexture)
	counts := s.Counts()
	counts[asset.KindTexture] = 10
	assert.Equal(t, 1, s.Count(asset.KindTexture))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsProcessed("Assets/p.prefab"))
	assert.Empty(t, s.Mappings())
	assert.Equal(t, 0, s.Count(asset.KindTexture))
}

func TestSessionSeed(t *testing.T) {
	s := NewSession()
	s.seed(Mapping{Source: "Assets/p.prefab", Variant: "Assets/LowRes/LowRes_p.prefab", Kind: asset.KindComposite})
	s.seed(Mapping{Source: "Assets/a.png", Variant: "Assets/LowRes/LowRes_a.png", Kind: asset.KindSprite})

	assert.True(t, s.IsProcessed("Assets/p.prefab"))
	assert.False(t, s.IsProcessed("Assets/a.png"))
	got, ok := s.Get("Assets/a.png")
	assert.True(t, ok)
	assert.Equal(t, asset.KindSprite, got.Kind)
}

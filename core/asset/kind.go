package asset

import (
	"path"
	"strings"
)

// Kind discriminates the asset types the engine knows about.
type Kind string

const (
	// KindUnknown is any asset the engine passes through untouched.
	KindUnknown Kind = "unknown"
	// KindSprite is an image imported as a sprite.
	KindSprite Kind = "sprite"
	// KindTexture is an image imported as a plain texture.
	KindTexture Kind = "texture"
	// KindAudio is an audio clip.
	KindAudio Kind = "audio"
	// KindData is a standalone data object (scriptable object).
	KindData Kind = "data"
	// KindComposite is a prefab: a hierarchy that may embed other composites.
	KindComposite Kind = "composite"
	// KindScene is a container of composite instances.
	KindScene Kind = "scene"
)

var extensionKinds = map[string]Kind{
	".png":    KindTexture,
	".jpg":    KindTexture,
	".jpeg":   KindTexture,
	".bmp":    KindTexture,
	".tga":    KindTexture,
	".psd":    KindTexture,
	".wav":    KindAudio,
	".ogg":    KindAudio,
	".mp3":    KindAudio,
	".asset":  KindData,
	".prefab": KindComposite,
	".unity":  KindScene,
	".scene":  KindScene,
}

// KindFromPath infers a kind from the file extension of p.
// Images default to KindTexture; sprites are only known from import metadata.
func KindFromPath(p string) Kind {
	if k, ok := extensionKinds[strings.ToLower(path.Ext(p))]; ok {
		return k
	}
	return KindUnknown
}

// IsImage reports whether k is one of the image kinds.
func (k Kind) IsImage() bool {
	return k == KindSprite || k == KindTexture
}

// HasDocument reports whether assets of kind k have editable contents.
func (k Kind) HasDocument() bool {
	return k == KindData || k == KindComposite || k == KindScene
}

package variant

import (
	"math"
	"path"
	"strings"
)

// TargetPath maps a source asset path to the location of its variant.
// The directory structure below rootDir is mirrored under rootDir/prefix and
// the file name gets a "prefix_" prefix:
//
//	Assets/Art/hero.png -> Assets/LowRes/Art/LowRes_hero.png
func TargetPath(rootDir, prefix, src string) string {
	dir, file := path.Split(src)
	dir = strings.TrimSuffix(dir, "/")
	switch {
	case dir == rootDir:
		dir = ""
	case strings.HasPrefix(dir, rootDir+"/"):
		dir = dir[len(rootDir)+1:]
	}
	return path.Join(rootDir, prefix, dir, prefix+"_"+file)
}

// SceneTargetPath maps a scene path to its variant, next to the source.
func SceneTargetPath(prefix, src string) string {
	dir, file := path.Split(src)
	return path.Join(dir, prefix+file)
}

// IsVariantPath reports whether p lives in the variant tree of prefix.
func IsVariantPath(rootDir, prefix, p string) bool {
	return strings.HasPrefix(p, path.Join(rootDir, prefix)+"/")
}

// NextPowerOfTwo returns the smallest power of two greater than or equal to v.
// Non-positive values yield 0.
func NextPowerOfTwo(v int) int {
	if v <= 0 {
		return 0
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// ScaledMaxSize computes the maximum texture dimension of an image variant:
// nextPowerOfTwo(round(maxDimension * scale)), rounding halves to even.
func ScaledMaxSize(maxDimension int, scale float64) int {
	return NextPowerOfTwo(int(math.RoundToEven(float64(maxDimension) * scale)))
}

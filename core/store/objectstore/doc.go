// Package objectstore implements asset.Store on top of an S3 compatible bucket.
//
// Every asset is one object keyed by its path. Import metadata lives in a
// YAML sidecar at "<path>.meta" and the result of a reimport is written to
// "Library/imported/<path><ext>", so source objects are never overwritten by
// lossy encodings. Sidecar changes are buffered and only written on Commit.
//
// Assets without a sidecar are identified from their extension and, for
// images and WAV audio, by probing the content once.
package objectstore

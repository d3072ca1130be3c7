// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the object
// store backend of the variant engine can be exercised against the mocks in
// core/storage/mocks. Both AWS S3 and self-hosted MinIO are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket bootstrap, see EnsureBucket.
//   - PutObject / GetObject / StatObject: content and metadata of one object.
//   - CopyObject: server side duplication of source assets into the variant tree.
//   - ListObjects / RemoveObject / RemoveObjects: enumeration and cleanup.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	err = storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region)
package storage

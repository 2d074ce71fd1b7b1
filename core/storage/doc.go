// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the sync tool
// needs: reading the product handle list from a bucket and archiving run
// summaries. Both AWS S3 and self-hosted MinIO work.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "handles/products.txt")
//
// The mocks sub-package holds a testify mock of Client.
package storage

package storage

import (
	"context"
	"io"
	"log"

	"virtualab/config"
)

// Bucket names one logical file area; every bucket has its own FTP login.
type Bucket string

const (
	BucketTeacher        Bucket = "teacher"  // teaching materials
	BucketArticle        Bucket = "article"  // reaction article images
	BucketMaterial       Bucket = "material" // general material such as the introduction video
	BucketProfilePicture Bucket = "pfp"
)

// BlobStore relays whole objects to and from the file server.
type BlobStore interface {
	Upload(ctx context.Context, bucket Bucket, name string, r io.Reader) error
	Download(ctx context.Context, bucket Bucket, name string) ([]byte, error)
	Delete(ctx context.Context, bucket Bucket, name string) error
}

// Store is the process-wide blob store used by the controllers.
var Store BlobStore

// Init selects the store named by STORAGE_DRIVER.
func Init(cfg *config.Config) {
	switch cfg.StorageDriver {
	case "memory":
		log.Println("[FTP] STORAGE_DRIVER=memory, files are kept in process memory")
		Store = NewMemoryStore()
	default:
		Store = NewFTPStore(cfg)
	}
}

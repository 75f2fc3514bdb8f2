package media

import (
	"context"

	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client removes image blobs whose metadata rows were deleted. Cleanup runs
// after the database transaction commits, never inside it.
type Client struct {
	mc     *minio.Client
	bucket string
	log    logger.LoggerI
}

// NewClient returns nil without error when no media endpoint is configured;
// callers treat a nil client as cleanup disabled.
func NewClient(cfg config.Config, log logger.LoggerI) (*Client, error) {
	if cfg.MinioHost == "" {
		return nil, nil
	}

	mc, err := minio.New(cfg.MinioHost, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKeyID, cfg.MinioSecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		mc:     mc,
		bucket: cfg.MinioImageBucket,
		log:    log,
	}, nil
}

// EnsureBucket creates the image bucket if it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
}

// RemoveObjects deletes blobs best-effort: a failed removal is logged and
// skipped, the database rows are already gone.
func (c *Client) RemoveObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			c.log.Error("media object removal failed",
				logger.String("bucket", c.bucket),
				logger.String("key", key),
				logger.Error(err))
		}
	}
}

package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Broadcast images are served straight from the bucket, so it carries an
// anonymous read-only policy.
const readOnlyBucketPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": "*",
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ensureMediaBucket(ctx, client, cfg.MinIOBucket); err != nil {
		return nil, err
	}

	return client, nil
}

func ensureMediaBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
		log.Printf("Created media bucket %q", bucket)
	}

	policy := fmt.Sprintf(readOnlyBucketPolicy, bucket)
	if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
		log.Printf("Warning: could not apply bucket policy: %v", err)
	}
	return nil
}

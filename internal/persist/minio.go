package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig describes an S3-compatible bucket.
type MinioConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT" yaml:"endpoint"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY" yaml:"-"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY" yaml:"-"`
	Bucket    string `envconfig:"MINIO_BUCKET" yaml:"bucket"`
	Region    string `envconfig:"MINIO_REGION" yaml:"region"`
	Secure    bool   `envconfig:"MINIO_SECURE" yaml:"secure"`
	// CreateBucket makes the bucket at start-up when it is missing.
	CreateBucket bool `envconfig:"MINIO_CREATE_BUCKET" yaml:"create_bucket"`
}

// MinioStore puts blobs into a MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	meta   map[string]string
}

// NewMinioStore builds a client for cfg. Only CreateBucket touches the network.
func NewMinioStore(ctx context.Context, cfg MinioConfig, meta map[string]string) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio: endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio: bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: client: %w", err)
	}
	if cfg.CreateBucket {
		exists, err := client.BucketExists(ctx, cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("minio: bucket exists: %w", err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
				return nil, fmt.Errorf("minio: make bucket %s: %w", cfg.Bucket, err)
			}
		}
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, meta: meta}, nil
}

// Put implements BlobStore.
func (m *MinioStore) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  "application/octet-stream",
		UserMetadata: m.meta,
	})
	if err != nil {
		return fmt.Errorf("minio: put %s/%s: %w", m.bucket, key, err)
	}
	return nil
}

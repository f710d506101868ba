package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioFrameStore uploads retained frames to an S3-compatible bucket so the
// recorded frame reference is a stable object URL instead of a local path.
type MinioFrameStore struct {
	client *minio.Client
	bucket string
}

// NewMinioFrameStore connects to the endpoint and ensures the bucket exists.
func NewMinioFrameStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioFrameStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client failed: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("bucket creation failed: %w", err)
		}
	}

	return &MinioFrameStore{client: client, bucket: bucket}, nil
}

func (s *MinioFrameStore) Publish(ctx context.Context, jobID string, framePath string) (string, error) {
	objectName := jobID + "/" + filepath.Base(framePath)

	_, err := s.client.FPutObject(ctx, s.bucket, objectName, framePath, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("frame upload failed: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, objectName), nil
}

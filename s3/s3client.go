package s3client

import (
	"context"

	"iga-backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var Client *minio.Client

const location = "us-east-1"

// IsConfigured is false when no endpoint is set, exports then stay download-only.
func IsConfigured() bool {
	return config.Conf.S3.Endpoint != ""
}

func NewClient() (*minio.Client, error) {
	useSSL := config.Conf.S3.UseSSL != nil && *config.Conf.S3.UseSSL
	return minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: useSSL,
	})
}

func MakeBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}

package s3client

import (
	"context"
	"recruitment-backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var Client *minio.Client

func NewClient() (*minio.Client, error) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create S3 client")
	}
	return minioClient, nil
}

// Ping checks the connection by listing buckets.
func Ping(ctx context.Context, client *minio.Client) error {
	_, err := client.ListBuckets(ctx)
	return err
}

package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	applicationapimodels "recruitment-backend/models/api/application"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("file not found")

type Provider interface {
	// Store saves a resume and returns the opaque locator to keep in the application record.
	Store(ctx context.Context, candidateID string, body []byte, fileName, contentType string) (locator string, err error)
	Retrieve(ctx context.Context, locator string) (*File, error)
	Remove(ctx context.Context, locator string) error
	MakeBucket(ctx context.Context) error
}

type File struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// objectClient is the subset of *minio.Client used by the storage.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
}

var Instance Provider

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = NewInstance(s3client, bucketName)
}

func NewInstance(s3client objectClient, bucketName string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   objectClient
	bucketName string
}

func (i impl) Store(ctx context.Context, candidateID string, body []byte, fileName, contentType string) (locator string, err error) {
	locator = ObjectKey(candidateID, uuid.New().String(), fileName)
	_, err = i.s3client.PutObject(ctx, i.bucketName, locator, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload resume")
	}
	return locator, nil
}

func (i impl) Retrieve(ctx context.Context, locator string) (*File, error) {
	if locator == "" {
		return nil, ErrNotFound
	}
	info, err := i.s3client.StatObject(ctx, i.bucketName, locator, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to stat resume")
	}
	obj, err := i.s3client.GetObject(ctx, i.bucketName, locator, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get resume")
	}
	return &File{
		Body:        obj,
		Size:        info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (i impl) Remove(ctx context.Context, locator string) error {
	if locator == "" {
		return nil
	}
	err := i.s3client.RemoveObject(ctx, i.bucketName, locator, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return errors.Wrap(err, "failed to remove resume")
	}
	return nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	log.WithField("bucket", i.bucketName).Info("bucket created")
	return nil
}

func ObjectKey(candidateID, fileID, fileName string) string {
	return fmt.Sprintf("resumes/%s/%s_%s", candidateID, fileID, applicationapimodels.SanitizeFileName(fileName))
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchObject"
}

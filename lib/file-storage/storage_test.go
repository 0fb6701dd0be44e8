package filestorage

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objectClient
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[objectName] = body
	f.types[objectName] = opts.ContentType
	return minio.UploadInfo{Key: objectName, Size: objectSize}, nil
}

func (f *fakeS3) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	body, ok := f.objects[objectName]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	}
	return minio.ObjectInfo{Key: objectName, Size: int64(len(body)), ContentType: f.types[objectName]}, nil
}

func (f *fakeS3) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	delete(f.objects, objectName)
	return nil
}

func TestStore(t *testing.T) {
	s3 := newFakeS3()
	storage := NewInstance(s3, "resumes")

	t.Run("object key is scoped by candidate", func(t *testing.T) {
		locator, err := storage.Store(context.Background(), "cand-1", []byte("%PDF-1.4"), "../My CV.pdf", "application/pdf")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(locator, "resumes/cand-1/"))
		require.True(t, strings.HasSuffix(locator, "_My_CV.pdf"))
		require.Equal(t, "application/pdf", s3.types[locator])

		require.NoError(t, storage.Remove(context.Background(), locator))
		require.Empty(t, s3.objects)
	})
	t.Run("upload error is returned", func(t *testing.T) {
		s3.putErr = errors.New("connection reset")
		defer func() { s3.putErr = nil }()
		_, err := storage.Store(context.Background(), "cand-1", []byte("x"), "cv.pdf", "application/pdf")
		require.Error(t, err)
	})
}

func TestRetrieveMissing(t *testing.T) {
	storage := NewInstance(newFakeS3(), "resumes")

	_, err := storage.Retrieve(context.Background(), "resumes/cand-1/gone.pdf")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = storage.Retrieve(context.Background(), "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestObjectKey(t *testing.T) {
	require.Equal(t, "resumes/c1/f1_resume.docx", ObjectKey("c1", "f1", "resume.docx"))
	require.Equal(t, "resumes/c1/f1_resume", ObjectKey("c1", "f1", "..."))
}

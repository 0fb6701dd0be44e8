package bucketworker

import (
	"context"
	filestorage "recruitment-backend/lib/file-storage"
	baseworker "recruitment-backend/lib/utils/base-worker"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type flakyStorage struct {
	filestorage.Provider
	failures int
	calls    int
}

func (f *flakyStorage) MakeBucket(ctx context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestEnsureBucketRetries(t *testing.T) {
	storage := &flakyStorage{failures: 2}
	worker := baseworker.NewInstance("test", time.Millisecond, time.Millisecond)
	worker.Run(context.Background(), ensureBucket(worker, storage))
	require.Equal(t, 3, storage.calls)
}

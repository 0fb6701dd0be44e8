package bucketworker

import (
	"context"
	filestorage "recruitment-backend/lib/file-storage"
	baseworker "recruitment-backend/lib/utils/base-worker"
	"time"
)

const (
	firstRunDelay = 5 * time.Second
	runInterval   = 30 * time.Second
	callTimeout   = 10 * time.Second
)

// StartWorker retries creating the resume bucket until storage answers.
// Used when storage was unreachable at startup.
func StartWorker(ctx context.Context, storage filestorage.Provider) {
	worker := baseworker.NewInstance("resume-bucket", firstRunDelay, runInterval)
	go worker.Run(ctx, ensureBucket(worker, storage))
}

func ensureBucket(worker *baseworker.BaseImpl, storage filestorage.Provider) func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		if err := storage.MakeBucket(callCtx); err != nil {
			worker.GetLogger().WithError(err).Warn("resume storage still unavailable")
			return false
		}
		worker.GetLogger().Info("resume storage is ready")
		return true
	}
}

package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run calls jobFunc every runInterval until ctx is done or jobFunc reports done.
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context) (done bool)) {
	logger := i.GetLogger()
	period := i.firstRunDelay
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-time.After(period):
			if i.runSafe(ctx, jobFunc) {
				logger.Info("worker finished")
				return
			}
		}
		period = i.runInterval
	}
}

func (i BaseImpl) runSafe(ctx context.Context, jobFunc func(ctx context.Context) bool) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
			done = false
		}
	}()
	return jobFunc(ctx)
}

package initializers

import (
	"context"
	"recruitment-backend/config"
	filestorage "recruitment-backend/lib/file-storage"
	bucketworker "recruitment-backend/lib/file-storage/bucket-worker"
	s3client "recruitment-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient()
	if err != nil {
		panic(err.Error())
	}
	s3client.Client = minioClient
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = s3client.Ping(checkCtx, minioClient); err == nil {
		err = filestorage.Instance.MakeBucket(checkCtx)
	}
	if err != nil {
		// uploads fail until storage is reachable, the rest of the api keeps working
		log.WithError(err).Error("S3 is not ready, retrying in background")
		bucketworker.StartWorker(ctx, filestorage.Instance)
		return
	}
	log.Info("S3 client initialized")
}

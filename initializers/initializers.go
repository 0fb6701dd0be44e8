package initializers

import (
	"context"
	"recruitment-backend/config"
	"recruitment-backend/fiberlog"
	"recruitment-backend/lib/analytics"
	applicationhandler "recruitment-backend/lib/application"
	authhandler "recruitment-backend/lib/auth"
	xlsexport "recruitment-backend/lib/export/xls"
	jobhandler "recruitment-backend/lib/job"
	jobcache "recruitment-backend/lib/job/cache"
	"recruitment-backend/lib/notification"
	"recruitment-backend/lib/rbac"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	mailer := InitSmtp()
	connectionhub.Init()
	notification.NewHandler(mailer, connectionhub.Instance, notification.Config{
		AppName:     config.Conf.App.Name,
		Timeout:     time.Duration(config.Conf.Notification.TimeoutSec) * time.Second,
		Concurrency: config.Conf.Notification.BroadcastConcurrency,
	})
	openJobsCache, err := jobcache.NewInstance(ctx, time.Duration(config.Conf.Cache.OpenJobsTTLSec)*time.Second)
	if err != nil {
		panic(err.Error())
	}
	rbac.NewHandler()
	authhandler.NewHandler()
	// the application handler closes jobs through the job handler
	jobhandler.NewHandler(openJobsCache)
	applicationhandler.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()
}

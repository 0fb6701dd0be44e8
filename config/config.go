package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr     string `default:"" env:"APP_HOST"`
		Port           int    `default:"5000"  env:"APP_PORT"`
		AllowedOrigins string `default:"http://localhost:5173" env:"APP_ALLOWED_ORIGINS"`
		Name           string `default:"Recruitment Management System" env:"APP_NAME"`
		ErrNotifyURL   string `default:"" env:"APP_ERR_NOTIFY_URL"`
		BodyLimitMB    int    `default:"10" env:"APP_BODY_LIMIT_MB"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruitment" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"change-me" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Username string `default:"admin" env:"ADMIN_USERNAME"`
		Email    string `default:"" env:"ADMIN_EMAIL"`
		Password string `default:"" env:"ADMIN_PASSWORD"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"resumes" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASS"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		From       string `default:"" env:"SMTP_FROM"`
		TLSEnabled *bool  `default:"false" env:"SMTP_SECURE"`
	}
	Notification struct {
		TimeoutSec           int `default:"15" env:"NOTIFICATION_TIMEOUT_SEC"`
		BroadcastConcurrency int `default:"8" env:"NOTIFICATION_BROADCAST_CONCURRENCY"`
	}
	Resume struct {
		MaxSizeBytes int64 `default:"5242880" env:"RESUME_MAX_SIZE_BYTES"`
	}
	Cache struct {
		OpenJobsTTLSec int `default:"60" env:"CACHE_OPEN_JOBS_TTL_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not loaded")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

package initializers

import (
	"recruitment-backend/config"
	"recruitment-backend/db"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(conf.Host, conf.Port, conf.Name, conf.User, conf.Password, *conf.DebugMode, *conf.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}
	// seeds the admin account
	db.InitPreload()
}

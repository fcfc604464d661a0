// Package db contains the database connection setup
package db

import (
	"fmt"
	"os"

	"microblog/api/model"
	"microblog/api/util"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch driver := viper.GetString("database.driver"); driver {
	case "sqlite":
		dsn := viper.GetString("database.dsn")

		// If running in a docker container don't allow the sqlite file to be
		// created. The host should instead mount it using volumes
		if util.IsRunningInDocker() {
			if _, err := os.Stat(dsn); err != nil {
				if err == os.ErrNotExist {
					return nil, fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to /app/%s", dsn)
				}
			}
		}

		dial = sqlite.Open(dsn)
	case "postgres":
		dial = postgres.Open(viper.GetString("database.dsn"))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

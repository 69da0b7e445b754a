package db

import (
	dbmodels "hiring-platform-backend/models/db"
)

func AutoMigrateDB() error {
	return DB.AutoMigrate(
		&dbmodels.Job{},
		&dbmodels.Application{},
	)
}

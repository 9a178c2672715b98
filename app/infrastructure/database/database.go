package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tileworld.ai/sprite-gateway/config/environment_variables"
)

var schemas []any

// RegisterSchemaForAutoMigrate queues a model for AutoMigrate when the
// database is opened. Called from dbschema init functions.
func RegisterSchemaForAutoMigrate(model any) {
	schemas = append(schemas, model)
}

// NewDB opens the sqlite generation log database and migrates registered
// schemas.
func NewDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(environment_variables.EnvironmentVariables.GENERATION_DB_PATH), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(schemas...); err != nil {
		return nil, err
	}
	return db, nil
}

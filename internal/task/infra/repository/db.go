package repository

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// OpenMySQL parses dsn with the MySQL driver and forces parseTime and UTC,
// which the task models rely on for their timestamp and date columns.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMySQLDSNInvalid, err)
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC

	return gorm.Open(gormmysql.New(gormmysql.Config{DSNConfig: cfg}), &gorm.Config{})
}

// Migrate creates or updates the tables used by the snapshot repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&TaskModel{}, &TagModel{}, &SubtaskModel{})
}

package db

import (
	"fmt"
	"time"

	"flightontime/backend/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

var DB *sqlx.DB

// InitSQLX opens the sqlx handle used for hand-written read queries. Postgres
// gets its own lib/pq pool; sqlite shares the GORM pool since the file allows one writer.
func InitSQLX(cfg *config.AppConfig, gormDB *gorm.DB) (*sqlx.DB, error) {
	if cfg.DBDriver == "sqlite" {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
		}
		DB = sqlx.NewDb(sqlDB, "sqlite3")
		return DB, nil
	}

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", cfg.PostgresDSN())
		if err == nil {
			return DB, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, err
}

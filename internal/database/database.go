// Package database opens the MySQL pool and applies the embedded schema
// migrations.
package database

import (
	"context"
	"fmt"
	"time"

	"aptilab/internal/config"
	"aptilab/internal/logger"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// NewSQLXMySQLDB returns a pool that has answered a ping. Callers block for a
// connection once MaxOpenConns are busy.
func NewSQLXMySQLDB(dsn string, dbCfg config.DBConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to mysql %s:%d/%s: %w", dbCfg.Host, dbCfg.Port, dbCfg.DBName, err)
	}
	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	logger.Get().Info("MySQL pool ready",
		zap.String("database", dbCfg.DBName),
		zap.Int("max_open_conns", dbCfg.MaxOpenConns))
	return db, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/config"
)

const defaultDSNParams = "parseTime=true&multiStatements=true"

func DSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		params = defaultDSNParams
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}

func ConnectDB(ctx context.Context, conf *config.Config) (*sqlx.DB, error) {
	dsn := DSN(conf)
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if !parsed.ParseTime {
		return nil, fmt.Errorf("mysql dsn must enable parseTime")
	}

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(conf.DbMaxOpenConns)
	db.SetMaxIdleConns(conf.DbMaxIdleConns)
	db.SetConnMaxLifetime(conf.DbConnMaxLifetime)

	zap.L().Info("connected to mysql",
		zap.String("addr", parsed.Addr),
		zap.String("database", parsed.DBName),
	)
	return db, nil
}

// withinTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func withinTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.L().Warn("failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

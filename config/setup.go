package config

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/log/zapadapter"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pfas-tracker/api/database"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//NewLogger builds the production logger used across the service
func NewLogger(level string) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Sampling = nil
	if err := loggerConfig.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "bad LOG_LEVEL %q", level)
	}
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	loggerConfig.EncoderConfig.TimeKey = "ts"
	loggerConfig.EncoderConfig.LevelKey = "l"
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}
	return loggerConfig.Build()
}

//ConnectDB opens the pool and, when DB_INIT is set, makes sure the schema exists
func ConnectDB(ctx context.Context, cfg *Config, logger *zap.Logger) (*pgxpool.Pool, error) {

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse connection string")
	}
	poolConfig.ConnConfig.Logger = zapadapter.NewLogger(logger)
	poolConfig.ConnConfig.LogLevel = pgx.LogLevelWarn

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if cfg.DB.Init {
		if err := database.SetupSchema(ctx, db); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "unable to setup database")
		}
	}
	return db, nil
}

// Package migrations applies the embedded PostgreSQL schema with golang-migrate.
package migrations

import (
	"context"
	"embed"
	"log/slog"

	"wellness/config"
	"wellness/internal/domain/lifecycle"
	"wellness/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var sqlFS embed.FS

// Source returns the embedded migration files as a golang-migrate source driver.
func Source() (source.Driver, error) {
	src, err := iofs.New(sqlFS, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}

	return src, nil
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// Register runs pending migrations on start when migrations.autoRun is enabled.
func Register(params Params) {
	if params.Config.Migrations == nil || !params.Config.Migrations.AutoRun {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return Up(ctx, params.DB, params.Logger)
		},
	})
}

// Up applies every pending migration. It borrows a single connection from the pool
// so closing the migrator leaves the pool open.
func Up(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to acquire migration connection")
	}

	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = conn.Close()

		return errors.Wrap(err, "failed to create migration driver")
	}

	src, err := Source()
	if err != nil {
		_ = driver.Close()

		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = driver.Close()

		return errors.Wrap(err, "failed to create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("Failed to close migrator", slog.Any("sourceError", srcErr), slog.Any("dbError", dbErr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date")

			return nil
		}

		return errors.Wrap(err, "failed to apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return errors.Wrap(err, "failed to read migration version")
	}
	logger.Info("Database migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	return nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag        = "dsn"
	migrationsFlag = "migrations-path"
	downFlag       = "down"

	defaultMigrations = "migrations"
)

func main() {
	slog.SetDefault(slog.New(
		slog.NewJSONHandler(os.Stderr, nil),
	))

	dsn, migrationsPath, down := getFlagsValues()
	validateFlags(dsn)
	makeMigrations(dsn, migrationsPath, down)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (dsn, migrations string, down bool) {
	dsnValue := pflag.StringP(dsnFlag, "d", "", "database connection string")
	migrationsValue := pflag.StringP(
		migrationsFlag, "m", defaultMigrations, "migration files directory",
	)
	downValue := pflag.Bool(downFlag, false, "roll back all migrations")
	pflag.Parse()
	return *dsnValue, *migrationsValue, *downValue
}

func validateFlags(dsn string) {
	if dsn == "" {
		slog.Error("too few args",
			"err", fmt.Errorf("--%s flag: required", dsnFlag))
		fallDown()
	}
}

func makeMigrations(dsn, migrationsPath string, down bool) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", dsn),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}

	m.Log = NewMigrationLogger()

	if down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migrations applied")
}

func fallDown() {
	os.Exit(2)
}

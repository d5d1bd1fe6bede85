package main

import (
	"fmt"
	"strconv"

	gomigrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/slrtce/smartschedule/apps"
)

var migrateRunFunc = runMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return apps.NewArgumentError("migrations require the postgres engine")
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateRunFunc(args[0], cli.db, "storage/database/migrations", arguments...)
}

func runMigration(command string, db *sqlx.DB, dir string, args ...string) error {
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return errors.Wrap(err, "preparing migration driver")
	}
	m, err := gomigrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "loading migrations")
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(args) == 0 {
			return apps.NewArgumentError("steps must be of form: migrate steps N")
		}
		n, perr := strconv.Atoi(args[0])
		if perr != nil {
			return apps.NewArgumentError(fmt.Sprintf("steps must be a number (got %q)", args[0]))
		}
		err = m.Steps(n)
	case "force":
		if len(args) == 0 {
			return apps.NewArgumentError("force must be of form: migrate force VERSION")
		}
		v, perr := strconv.Atoi(args[0])
		if perr != nil {
			return apps.NewArgumentError(fmt.Sprintf("version must be a number (got %q)", args[0]))
		}
		err = m.Force(v)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && verr != gomigrate.ErrNilVersion {
			return verr
		}
		fmt.Printf("version: %d (dirty: %t)\n", v, dirty)
		return nil
	default:
		return apps.NewArgumentError(fmt.Sprintf("%q: no such command", command))
	}

	if err != nil && err != gomigrate.ErrNoChange {
		return err
	}
	return nil
}

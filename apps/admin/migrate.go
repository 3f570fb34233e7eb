package main

import (
	"errors"

	"github.com/pressly/goose/v3"

	"github.com/lamms/lamms/storage/database"
)

var (
	gooseRunFunc = goose.Run // mockable

	errNoSQLDatabase = errors.New("migrations need a SQL database (database.engine is memory)")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoSQLDatabase
	}
	if err := database.SetupMigrations(); err != nil {
		return err
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, database.MigrationsDir, arguments...)
}

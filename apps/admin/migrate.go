package main

import (
	"context"

	"github.com/trezcool/videoteca/storage/database"
)

var (
	connectDBFunc = database.Connect       // mockable
	gooseRunFunc  = database.RunMigrations // mockable
)

// migrate runs the goose `command` (up, down, status, ...) against the progress database.
func (cli *commandLine) migrate(command string, args []string) error {
	db, err := connectDBFunc(cli.conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return gooseRunFunc(context.Background(), command, db.DB, args...)
}

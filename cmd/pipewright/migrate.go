package main

import (
	"github.com/voidshard/pipewright/pkg/database"
)

const (
	docMigrate = `Apply (or roll back) the database schema`
)

type optsMigrate struct {
	optsGeneral
	optsDatabase

	Down bool `long:"down" description:"Roll back every migration"`
}

func (c *optsMigrate) Execute(args []string) error {
	c.logger()
	return database.Migrate(c.optsDatabase.options(), c.Down)
}

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	docMain = `pipewright runs multi step document pipelines`
)

func main() {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("reading .env", "error", err)
	}

	parser := flags.NewParser(nil, flags.Default)
	parser.LongDescription = docMain

	parser.AddCommand("api", docApi, docApiLong, &optsAPI{})
	parser.AddCommand("worker", docWorker, docWorkerLong, &optsWorker{})
	parser.AddCommand("migrate", docMigrate, docMigrate, &optsMigrate{})
	parser.AddCommand("submit", docSubmit, docSubmitLong, &optsSubmit{})

	if _, err := parser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case *flags.Error:
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			slog.Error("exiting", "error", err)
			os.Exit(1)
		}
	}
}

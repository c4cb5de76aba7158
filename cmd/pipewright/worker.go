package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/queue"
)

const (
	docWorker     = `Forward queued tasks to the api`
	docWorkerLong = `Pulls task deliveries off the queue and posts each to the api's processing endpoint.
Run as many as you like; the api does the actual work.`
)

type optsWorker struct {
	optsGeneral
	optsQueue

	APIURL      string `long:"api-url" env:"API_URL" description:"Base url of the api" default:"http://localhost:8100"`
	Key         string `long:"key" env:"PIPEWRIGHT_KEY" description:"Key guarding the api's internal endpoints" required:"true"`
	Concurrency int    `long:"concurrency" env:"CONCURRENCY" description:"Deliveries forwarded at once" default:"10"`
}

func (c *optsWorker) Execute(args []string) error {
	c.logger()

	if c.Key == "" {
		return fmt.Errorf("%w key is required", errors.ErrInvalidArg)
	}
	qOpts, err := c.optsQueue.options()
	if err != nil {
		return err
	}
	qOpts.Concurrency = c.Concurrency
	qOpts.ProcessURL = fmt.Sprintf("%s/tasks/process/%s", strings.TrimRight(c.APIURL, "/"), c.Key)

	qu, err := queue.NewAsynqQueue(qOpts)
	if err != nil {
		return err
	}

	go func() {
		exit := make(chan os.Signal, 1)
		signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
		<-exit
		slog.Info("shutting down worker")
		qu.Close()
	}()

	slog.Info("forwarding deliveries", "api", c.APIURL, "concurrency", qOpts.Concurrency)
	err = qu.Run()
	if err != nil {
		qu.Close()
	}
	return err
}

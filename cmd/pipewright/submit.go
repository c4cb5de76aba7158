package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/voidshard/pipewright/pkg/api/http/client"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	docSubmit     = `Create a task running a pipeline`
	docSubmitLong = `Creates a task for the given pipeline with a JSON document read from a file
(or stdin) and prints it. With --wait, polls until the task is finished.`
)

type optsSubmit struct {
	APIURL string `long:"api-url" env:"API_URL" description:"Base url of the api" default:"http://localhost:8100"`
	User   string `long:"user" env:"PIPEWRIGHT_USER" description:"User to submit as" required:"true"`
	File   string `long:"file" short:"f" description:"JSON document to submit, - for stdin" default:"-"`

	Wait     bool          `long:"wait" description:"Wait for the task to finish"`
	Interval time.Duration `long:"interval" description:"Poll interval when waiting" default:"2s"`

	Args struct {
		PipeID string `positional-arg-name:"pipeline" required:"true"`
	} `positional-args:"true"`
}

func (c *optsSubmit) Execute(args []string) error {
	ctx := context.Background()

	var in io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	doc := structs.NewDocument()
	err := json.NewDecoder(in).Decode(doc)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	cli, err := client.New(c.APIURL, c.User)
	if err != nil {
		return err
	}
	t, err := cli.CreateTask(ctx, c.Args.PipeID, doc)
	if err != nil {
		return err
	}

	for c.Wait && !structs.IsTerminalState(t.State) {
		time.Sleep(c.Interval)
		found, err := cli.Tasks(ctx, &structs.Query{TaskIDs: []string{t.ID}, Limit: 1})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("task %s vanished", t.ID)
		}
		t = found[0]
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

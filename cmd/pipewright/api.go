package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/voidshard/pipewright/internal/config"
	"github.com/voidshard/pipewright/pkg/allocator"
	"github.com/voidshard/pipewright/pkg/api"
	"github.com/voidshard/pipewright/pkg/api/http/server"
	"github.com/voidshard/pipewright/pkg/database"
	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/queue"
	"github.com/voidshard/pipewright/pkg/storage"
)

const (
	docApi     = `Run the API server`
	docApiLong = `Serves the task API, the processing endpoint the workers forward deliveries to,
the resume endpoint remote jobs report back on & the box refresh cron endpoint.`
)

type optsAPI struct {
	optsGeneral
	optsDatabase
	optsQueue

	Addr      string `long:"addr" env:"ADDR" description:"Address to bind to" default:"localhost:8100"`
	PublicURL string `long:"public-url" env:"PUBLIC_URL" description:"Url remote jobs can reach us on" default:"http://localhost:8100"`
	Key       string `long:"key" env:"PIPEWRIGHT_KEY" description:"Key guarding the internal endpoints" required:"true"`
	Config    string `long:"config" env:"CONFIG" description:"Path to a YAML config file"`

	Bucket          string `long:"bucket" env:"GCS_BUCKET" description:"GCS bucket for suspended tasks & uploads (in memory if unset)"`
	BucketPrefix    string `long:"bucket-prefix" env:"GCS_PREFIX" description:"Prefix of every key written to the bucket"`
	CredentialsFile string `long:"gcp-credentials" env:"GOOGLE_APPLICATION_CREDENTIALS" description:"GCP service account key"`

	OpenAIToken   string `long:"openai-token" env:"OPENAI_API_KEY" description:"Default OpenAI token (documents may carry their own)"`
	OpenAIBaseURL string `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"OpenAI compatible endpoint"`
	EnableOpenAI  bool   `long:"openai" env:"ENABLE_OPENAI" description:"Register the OpenAI processors even without a default token"`

	WeaviateURL    string `long:"weaviate-url" env:"WEAVIATE_URL" description:"Weaviate endpoint (ie. http://localhost:8080)"`
	WeaviateAPIKey string `long:"weaviate-api-key" env:"WEAVIATE_API_KEY" description:"Weaviate API key"`

	ControllerURL   string `long:"controller-url" env:"CONTROLLER_URL" description:"Box controller endpoint; box backed processors are disabled if unset"`
	ControllerUser  string `long:"controller-user" env:"CONTROLLER_USER" description:"Box controller username"`
	ControllerToken string `long:"controller-token" env:"CONTROLLER_TOKEN" description:"Box controller token"`
	PrivilegedPing  bool   `long:"privileged-ping" env:"PRIVILEGED_PING" description:"Probe boxes with raw ICMP (needs CAP_NET_RAW)"`
}

func (c *optsAPI) Execute(args []string) error {
	c.logger()
	ctx := context.Background()

	if c.Key == "" {
		return fmt.Errorf("%w key is required", errors.ErrInvalidArg)
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	db, err := database.NewPostgres(c.optsDatabase.options())
	if err != nil {
		return err
	}
	defer db.Close()

	qOpts, err := c.optsQueue.options()
	if err != nil {
		return err
	}
	qu, err := queue.NewAsynqQueue(qOpts)
	if err != nil {
		return err
	}
	defer qu.Close()

	var blobs storage.BlobStore
	if c.Bucket != "" {
		gcs, err := storage.NewGCS(ctx, &storage.Options{
			Bucket:          c.Bucket,
			Prefix:          c.BucketPrefix,
			CredentialsFile: c.CredentialsFile,
		})
		if err != nil {
			return err
		}
		defer gcs.Close()
		blobs = gcs
	}

	opts := &api.Options{
		Core: &cfg.Core,
		Processors: &processor.Dependencies{
			ResumeURL: fmt.Sprintf("%s/tasks/resume/%s", strings.TrimRight(c.PublicURL, "/"), c.Key),
		},
	}

	if c.OpenAIToken != "" || c.EnableOpenAI {
		opts.Processors.OpenAI = &processor.OpenAIOptions{Token: c.OpenAIToken, BaseURL: c.OpenAIBaseURL}
	}

	if c.WeaviateURL != "" {
		client, err := c.weaviate()
		if err != nil {
			return err
		}
		opts.Processors.Weaviate = client
	}

	if c.ControllerURL != "" {
		ctrl := allocator.NewController(&allocator.ControllerOptions{
			URL:        c.ControllerURL,
			Username:   c.ControllerUser,
			Token:      c.ControllerToken,
			NamePrefix: cfg.Boxes.NamePrefix,
		})
		prober := allocator.NewNetProber(2*time.Second, c.PrivilegedPing)
		opts.Processors.Boxes = allocator.New(db, ctrl, prober, cfg.Allocator())
		opts.Boxes = ctrl
	}

	svc, err := api.NewAPI(db, qu, blobs, opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	slog.Info("starting api", "addr", c.Addr, "boxes", c.ControllerURL != "", "bucket", c.Bucket)
	s := server.NewServer(c.Addr, c.Key, c.Debug)
	return s.ServeForever(svc)
}

func (c *optsAPI) weaviate() (*weaviate.Client, error) {
	u, err := url.Parse(c.WeaviateURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w weaviate url %q", errors.ErrInvalidArg, c.WeaviateURL)
	}
	cfg := weaviate.Config{Host: u.Host, Scheme: u.Scheme}
	if c.WeaviateAPIKey != "" {
		cfg.Headers = map[string]string{"Authorization": "Bearer " + c.WeaviateAPIKey}
	}
	return weaviate.NewClient(cfg)
}

package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	asynqTaskType = "pipewright:process"
)

// enqueuer is the part of asynq.Client we use
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type Asynq struct {
	opts  *Options
	redis asynq.RedisConnOpt

	cli enqueuer

	// set when we're forwarding deliveries
	lock sync.Mutex
	srv  *asynq.Server
	http *http.Client
	done chan struct{}
}

func NewAsynqQueue(opts *Options) (*Asynq, error) {
	opts.SetDefaults()
	redis, err := redisOpts(opts)
	if err != nil {
		return nil, err
	}
	return &Asynq{
		opts:  opts,
		redis: redis,
		cli:   asynq.NewClient(redis),
		http:  &http.Client{Timeout: opts.ForwardTimeout},
	}, nil
}

func redisOpts(opts *Options) (asynq.RedisConnOpt, error) {
	conn, err := asynq.ParseRedisURI(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w queue url: %v", errors.ErrInvalidArg, err)
	}
	if opts.TLSConfig == nil {
		return conn, nil
	}
	switch c := conn.(type) {
	case asynq.RedisClientOpt:
		c.TLSConfig = opts.TLSConfig
		if c.TLSConfig.ServerName == "" {
			c.TLSConfig = c.TLSConfig.Clone()
			c.TLSConfig.ServerName, _, _ = net.SplitHostPort(c.Addr)
		}
		return c, nil
	case asynq.RedisFailoverClientOpt:
		c.TLSConfig = opts.TLSConfig
		return c, nil
	default:
		return nil, fmt.Errorf("%w tls for queue url %s", errors.ErrNotSupported, opts.URL)
	}
}

func (a *Asynq) Enqueue(ctx context.Context, t *structs.Task, delay time.Duration) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = a.cli.EnqueueContext(ctx, asynq.NewTask(asynqTaskType, payload), a.enqueueOptions(t, delay)...)
	return err
}

func (a *Asynq) enqueueOptions(t *structs.Task, delay time.Duration) []asynq.Option {
	return []asynq.Option{
		asynq.Queue(a.opts.Name),
		asynq.ProcessIn(Delay(t, delay)),
		asynq.MaxRetry(a.opts.DeliveryRetries),
		asynq.Timeout(a.opts.ForwardTimeout),
	}
}

// Run forwards deliveries to the processing endpoint until Close is called.
func (a *Asynq) Run() error {
	if a.opts.ProcessURL == "" {
		return fmt.Errorf("%w forwarding requires a process url", errors.ErrInvalidArg)
	}

	a.lock.Lock()
	if a.srv != nil {
		a.lock.Unlock()
		return fmt.Errorf("%w forwarder already running", errors.ErrInvalidState)
	}
	a.srv = asynq.NewServer(a.redis, asynq.Config{
		Concurrency: a.opts.Concurrency,
		Queues:      map[string]int{a.opts.Name: 1},
		LogLevel:    asynq.WarnLevel,
	})
	a.done = make(chan struct{})
	a.lock.Unlock()

	mux := asynq.NewServeMux()
	mux.HandleFunc(asynqTaskType, a.forward)

	err := a.srv.Start(mux)
	if err != nil {
		return err
	}
	<-a.done
	return nil
}

// forward posts a delivery to the processing endpoint. The endpoint always
// answers 200 if it received the task, so anything else is a transport problem
// and we return an error to have asynq redeliver.
func (a *Asynq) forward(ctx context.Context, t *asynq.Task) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.opts.ProcessURL, bytes.NewReader(t.Payload()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		slog.Warn("failed to forward delivery", "component", "queue", "error", err)
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("processing endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func (a *Asynq) Close() error {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.srv != nil {
		a.srv.Shutdown()
		close(a.done)
		a.srv = nil
	}
	return a.cli.Close()
}

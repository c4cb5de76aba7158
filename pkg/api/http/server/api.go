package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voidshard/pipewright/internal/utils"
	"github.com/voidshard/pipewright/pkg/api"
	"github.com/voidshard/pipewright/pkg/api/http/common"
	"github.com/voidshard/pipewright/pkg/processor"
	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	wait = 30 * time.Second

	// processTimeout bounds handling a single delivery
	processTimeout = 10 * time.Minute

	// seconds a job should wait before resuming a task that isn't parked yet
	resumeRetryAfter = "2"
)

type Server struct {
	addr       string
	key        string
	debug      bool
	svc        api.API
	exit       chan os.Signal
	httpserver *http.Server
	log        *slog.Logger
}

// NewServer returns a server listening on addr. The key guards the internal
// endpoints (task deliveries, resumes & cron).
func NewServer(addr, key string, debug bool) *Server {
	return &Server{
		addr:  addr,
		key:   key,
		debug: debug,
		exit:  make(chan os.Signal, 1),
		log:   slog.Default().With("component", "server"),
	}
}

// Handler returns the routes served for the given API
func (s *Server) Handler(svc api.API) http.Handler {
	s.svc = svc

	router := mux.NewRouter()
	router.HandleFunc(common.HEALTH, s.Health).Methods(http.MethodGet)
	router.Handle(common.METRICS, promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc(common.TASKS_PROCESS, s.Process).Methods(http.MethodPost)
	router.HandleFunc(common.TASKS_RESUME, s.Resume).Methods(http.MethodPost)
	router.HandleFunc(common.CRON_BOXES, s.RefreshBoxes).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.CALLBACKS, s.Callback).Methods(http.MethodPost)

	router.HandleFunc(common.API_PIPELINE_TASKS, s.CreateTask).Methods(http.MethodPost)
	router.HandleFunc(common.API_TASKS, s.Tasks).Methods(http.MethodGet, http.MethodDelete)
	router.HandleFunc(common.API_TASK_CANCEL, s.CancelTask).Methods(http.MethodPost)
	router.HandleFunc(common.API_TASK, s.DeleteTask).Methods(http.MethodDelete)

	if s.debug {
		s.log.Info("debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware)
	}

	return router
}

func (s *Server) ServeForever(svc api.API) error {
	s.httpserver = &http.Server{
		Handler:      s.Handler(svc),
		Addr:         s.addr,
		WriteTimeout: processTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		s.log.Info("listening", "addr", s.httpserver.Addr)
		if err := s.httpserver.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("serving", "error", err)
			s.exit <- syscall.SIGTERM
		}
	}()

	signal.Notify(s.exit, os.Interrupt, syscall.SIGTERM)
	<-s.exit

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return s.httpserver.Shutdown(ctx)
}

// Process handles a task delivery forwarded by the queue. Once the key checks out we
// always answer 200: the delivery has been dealt with, even if that meant failing
// the task, and must not be redelivered.
func (s *Server) Process(w http.ResponseWriter, r *http.Request) {
	if !validKey(s.key, mux.Vars(r)["key"]) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	t := &structs.Task{}
	if err := unmarshalJson(noWrite{w}, r, t); err != nil {
		s.log.Warn("dropping undecodable delivery", "error", err)
		encode(w, &common.ErrorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), processTimeout)
	defer cancel()

	resp := &common.ErrorResponse{}
	if err := s.svc.Process(ctx, t); err != nil {
		resp.Error = err.Error()
	}
	encode(w, resp)
}

// Resume wakes a suspended task with the result of the job it waited on.
func (s *Server) Resume(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !validKey(s.key, vars["key"]) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if !utils.IsValidID(vars["task_id"]) {
		http.Error(w, "bad task id", http.StatusBadRequest)
		return
	}

	result, err := unmarshalDocument(w, r)
	if err != nil {
		return
	}

	t, err := s.svc.ResumeTask(r.Context(), vars["task_id"], vars["token"], result)
	if err != nil {
		code := mapError(err)
		if code == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", resumeRetryAfter)
		}
		http.Error(w, err.Error(), code)
		return
	}
	encode(w, scrubbed(t))
}

// RefreshBoxes syncs the worker box inventory with the box controller
func (s *Server) RefreshBoxes(w http.ResponseWriter, r *http.Request) {
	if !validKey(s.key, mux.Vars(r)["key"]) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	count, err := s.svc.RefreshBoxes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	encode(w, &common.UpdateResponse{Updated: int64(count)})
}

// Callback accepts a task callback & logs it. Handy as the default callback uri
// when nothing else wants to hear about failures.
func (s *Server) Callback(w http.ResponseWriter, r *http.Request) {
	p := &processor.CallbackPayload{}
	err := unmarshalJson(w, r, p)
	if err != nil {
		return
	}
	s.log.Info("callback received",
		"task", p.TaskID,
		"pipe", p.PipeID,
		"node", p.NodeID,
		"state", p.State,
		"error", p.Error,
		"keys", p.Document.Keys(),
	)
	encode(w, map[string]bool{"ok": true})
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r, common.HEADER_USER_ID)
	if !ok {
		return
	}

	doc, err := unmarshalDocument(w, r)
	if err != nil {
		return
	}

	t, err := s.svc.CreatePipelineTask(r.Context(), user, mux.Vars(r)["pipe_id"], doc)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	encode(w, scrubbed(t))
}

func (s *Server) Tasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getTasks(w, r)
	case http.MethodDelete:
		s.deleteTasks(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r, common.HEADER_USER_ID)
	if !ok {
		return
	}

	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}
	q.UserIDs = []string{user}

	items, err := s.svc.Tasks(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if s.debug {
		s.log.Debug("listed tasks", "url", r.URL.Path, "count", len(items))
	}
	encode(w, items)
}

func (s *Server) deleteTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r, common.HEADER_USER_ID)
	if !ok {
		return
	}

	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}
	if len(q.States) == 0 {
		http.Error(w, "states are required", http.StatusBadRequest)
		return
	}

	count, err := s.svc.DeleteTasksByStates(r.Context(), user, q.States)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	encode(w, &common.UpdateResponse{Updated: count})
}

func (s *Server) CancelTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r, common.HEADER_USER_ID)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if !utils.IsValidID(id) {
		http.Error(w, "bad task id", http.StatusBadRequest)
		return
	}

	t, err := s.svc.CancelTask(r.Context(), user, id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	encode(w, t)
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r, common.HEADER_USER_ID)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	if !utils.IsValidID(id) {
		http.Error(w, "bad task id", http.StatusBadRequest)
		return
	}

	err := s.svc.DeleteTask(r.Context(), user, id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	encode(w, &common.UpdateResponse{Updated: 1})
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	encode(w, map[string]bool{"ok": true})
}

// noWrite swallows error responses so a handler can answer itself
type noWrite struct {
	http.ResponseWriter
}

func (n noWrite) WriteHeader(int) {}

func (n noWrite) Write(b []byte) (int, error) {
	return len(b), nil
}

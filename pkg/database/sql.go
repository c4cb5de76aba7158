package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/voidshard/pipewright/pkg/structs"
)

const (
	tableTasks     = "tasks"
	tableBoxes     = "boxes"
	tableUsers     = "users"
	tablePipelines = "pipelines"
	tableNodes     = "nodes"
	tableTemplates = "templates"
	tableSecrets   = "secrets"

	taskColumns = "id, user_id, pipe_id, nodes, state, error, retries, split_status, jump_status, resume_token, created_at, updated_at"
)

var timeNow = func() int64 {
	return time.Now().Unix()
}

// sqlFilter is a "field IN (...)" clause. Filters with no values are skipped.
type sqlFilter struct {
	field  string
	values []string
}

func taskFilters(q *structs.Query) []sqlFilter {
	return []sqlFilter{
		{"id", q.TaskIDs},
		{"user_id", q.UserIDs},
		{"pipe_id", q.PipeIDs},
		{"state", statesToStrings(q.States)},
	}
}

// toSqlWhere builds a WHERE clause (or "") with placeholders starting from $1
func toSqlWhere(filters []sqlFilter, createdBefore time.Time) (string, []interface{}) {
	and := []string{}
	args := []interface{}{}
	for _, f := range filters {
		if len(f.values) == 0 {
			continue
		}
		s, a := toSqlIn(len(args)+1, f.field, f.values)
		and = append(and, s)
		args = append(args, a...)
	}
	if !createdBefore.IsZero() {
		args = append(args, createdBefore.UTC())
		and = append(and, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(and) == 0 {
		return "", args
	}
	return fmt.Sprintf("WHERE %s", strings.Join(and, " AND ")), args
}

func toSqlIn(offset int, field string, args []string) (string, []interface{}) {
	if len(args) == 0 {
		return "", []interface{}{}
	}
	vals := []string{}
	ifargs := []interface{}{}
	for i, a := range args {
		vals = append(vals, fmt.Sprintf("$%d", i+offset))
		ifargs = append(ifargs, a)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(vals, ", ")), ifargs
}

func toTaskSqlArgs(offset int, t *structs.Task) (string, []interface{}) {
	args := []interface{}{
		t.ID,
		t.UserID,
		t.PipeID,
		t.Nodes,
		string(t.State),
		t.Error,
		t.Retries,
		t.SplitStatus,
		t.JumpStatus,
		t.ResumeToken,
		t.CreatedAt.UTC(),
		timeNow(),
	}
	vals := []string{}
	for i := range args {
		vals = append(vals, fmt.Sprintf("$%d", i+offset))
	}
	return fmt.Sprintf("(%s)", strings.Join(vals, ", ")), args
}

// toTaskSqlUpdate returns "SET ..." for the non nil fields of u, with placeholders
// starting at offset. updated_at is always set.
func toTaskSqlUpdate(offset int, u *structs.TaskUpdate) (string, []interface{}) {
	sets := []string{}
	args := []interface{}{}
	add := func(field string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)+offset-1))
	}
	if u.State != nil {
		add("state", string(*u.State))
	}
	if u.Error != nil {
		add("error", *u.Error)
	}
	if u.Retries != nil {
		add("retries", *u.Retries)
	}
	if u.Nodes != nil {
		add("nodes", u.Nodes)
	}
	if u.SplitStatus != nil {
		add("split_status", *u.SplitStatus)
	}
	if u.JumpStatus != nil {
		add("jump_status", *u.JumpStatus)
	}
	if u.ResumeToken != nil {
		add("resume_token", *u.ResumeToken)
	}
	add("updated_at", timeNow())
	return fmt.Sprintf("SET %s", strings.Join(sets, ", ")), args
}

func statesToStrings(in []structs.State) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

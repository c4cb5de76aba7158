package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
}

func NewPostgres(opts *Options) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(opts.ConnString())
	if err != nil {
		return nil, fmt.Errorf("%w database url: %v", errors.ErrInvalidArg, err)
	}
	cfg.MaxConns = opts.MaxConns
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	return &Postgres{pool: pool, opts: opts}, err
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) InsertTask(ctx context.Context, t *structs.Task) error {
	vals, args := toTaskSqlArgs(1, t)
	qstr := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s;", tableTasks, taskColumns, vals)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, qstr, args...)
	return err
}

func (p *Postgres) UpdateTask(ctx context.Context, id string, u *structs.TaskUpdate) (int64, error) {
	set, args := toTaskSqlUpdate(1, u)
	args = append(args, id)
	where := fmt.Sprintf("WHERE id = $%d", len(args))
	if len(u.WhereStates) > 0 {
		in, inargs := toSqlIn(len(args)+1, "state", statesToStrings(u.WhereStates))
		where = fmt.Sprintf("%s AND %s", where, in)
		args = append(args, inargs...)
	}
	qstr := fmt.Sprintf("UPDATE %s %s %s;", tableTasks, set, where)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, qstr, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Tasks(ctx context.Context, q *structs.Query) ([]*structs.Task, error) {
	q.Sanitize()
	where, args := toSqlWhere(taskFilters(q), q.CreatedBefore)
	args = append(args, q.Limit, q.Offset)

	qstr := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		taskColumns, tableTasks, where, len(args)-1, len(args),
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*structs.Task{}
	for rows.Next() {
		t := structs.Task{Document: structs.NewDocument()}
		var state string
		var updated int64
		err = rows.Scan(
			&t.ID,
			&t.UserID,
			&t.PipeID,
			&t.Nodes,
			&state,
			&t.Error,
			&t.Retries,
			&t.SplitStatus,
			&t.JumpStatus,
			&t.ResumeToken,
			&t.CreatedAt,
			&updated,
		)
		if err != nil {
			return nil, err
		}
		t.State = structs.State(state)
		t.CreatedAt = t.CreatedAt.UTC()
		tasks = append(tasks, &t)
	}

	return tasks, rows.Err()
}

func (p *Postgres) DeleteTasks(ctx context.Context, q *structs.Query) (int64, error) {
	where, args := toSqlWhere(taskFilters(q), q.CreatedBefore)
	if where == "" {
		return 0, nil
	}
	qstr := fmt.Sprintf("DELETE FROM %s %s;", tableTasks, where)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, qstr, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

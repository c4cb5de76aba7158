package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voidshard/pipewright/pkg/errors"
	"github.com/voidshard/pipewright/pkg/structs"
)

func (p *Postgres) User(ctx context.Context, id string) (*structs.User, error) {
	u := &structs.User{}
	err := p.queryRow(ctx,
		fmt.Sprintf("SELECT id, name, database_id, api_key FROM %s WHERE id = $1;", tableUsers),
		[]interface{}{id},
		&u.ID, &u.Name, &u.DatabaseID, &u.APIKey,
	)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (p *Postgres) Pipeline(ctx context.Context, id string) (*structs.Pipeline, error) {
	pipe := &structs.Pipeline{}
	err := p.queryRow(ctx,
		fmt.Sprintf("SELECT id, user_id, name, node_ids FROM %s WHERE id = $1;", tablePipelines),
		[]interface{}{id},
		&pipe.ID, &pipe.UserID, &pipe.Name, &pipe.NodeIDs,
	)
	if err != nil {
		return nil, notFound(err, "pipeline", id)
	}
	return pipe, nil
}

func (p *Postgres) Node(ctx context.Context, id string) (*structs.Node, error) {
	n := &structs.Node{}
	var extras []byte
	err := p.queryRow(ctx,
		fmt.Sprintf("SELECT id, user_id, name, processor, template_id, extras FROM %s WHERE id = $1;", tableNodes),
		[]interface{}{id},
		&n.ID, &n.UserID, &n.Name, &n.Processor, &n.TemplateID, &extras,
	)
	if err != nil {
		return nil, notFound(err, "node", id)
	}
	n.Extras = map[string]interface{}{}
	if len(extras) > 0 {
		err = json.Unmarshal(extras, &n.Extras)
	}
	return n, err
}

func (p *Postgres) Template(ctx context.Context, id string) (*structs.Template, error) {
	t := &structs.Template{}
	var inputs, outputs []byte
	err := p.queryRow(ctx,
		fmt.Sprintf("SELECT id, user_id, name, text, input_fields, output_fields FROM %s WHERE id = $1;", tableTemplates),
		[]interface{}{id},
		&t.ID, &t.UserID, &t.Name, &t.Text, &inputs, &outputs,
	)
	if err != nil {
		return nil, notFound(err, "template", id)
	}
	if len(inputs) > 0 {
		if err = json.Unmarshal(inputs, &t.InputFields); err != nil {
			return nil, err
		}
	}
	if len(outputs) > 0 {
		if err = json.Unmarshal(outputs, &t.OutputFields); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (p *Postgres) Secret(ctx context.Context, userID, name string) (string, error) {
	var value string
	err := p.queryRow(ctx,
		fmt.Sprintf("SELECT value FROM %s WHERE user_id = $1 AND name = $2;", tableSecrets),
		[]interface{}{userID, name},
		&value,
	)
	if err != nil {
		return "", notFound(err, "secret", name)
	}
	return value, nil
}

func (p *Postgres) queryRow(ctx context.Context, qstr string, args []interface{}, dest ...interface{}) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return conn.QueryRow(ctx, qstr, args...).Scan(dest...)
}

// notFound converts pgx's no rows error to ErrNotFound
func notFound(err error, kind, id string) error {
	if err == pgx.ErrNoRows {
		return fmt.Errorf("%w %s %s", errors.ErrNotFound, kind, id)
	}
	return err
}

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/voidshard/pipewright/pkg/structs"
)

func (p *Postgres) Boxes(ctx context.Context, kind string) ([]*structs.Box, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		fmt.Sprintf("SELECT id, kind, ip_address, zone, status, updated_at FROM %s WHERE kind = $1 ORDER BY id;", tableBoxes),
		kind,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boxes := []*structs.Box{}
	for rows.Next() {
		b := structs.Box{}
		var status string
		err = rows.Scan(&b.ID, &b.Kind, &b.IPAddress, &b.Zone, &status, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		b.Status = structs.ToBoxStatus(status)
		boxes = append(boxes, &b)
	}
	return boxes, rows.Err()
}

func (p *Postgres) SetBoxStatus(ctx context.Context, id string, status structs.BoxStatus) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET status = $1, updated_at = $2 WHERE id = $3;", tableBoxes),
		string(status), timeNow(), id,
	)
	return err
}

func (p *Postgres) UpsertBoxes(ctx context.Context, boxes []*structs.Box) error {
	if len(boxes) == 0 {
		return nil
	}
	vals, args := toBoxSqlArgs(boxes)
	qstr := fmt.Sprintf(`INSERT INTO %s (id, kind, ip_address, zone, status, updated_at) VALUES %s
	ON CONFLICT (id) DO UPDATE SET kind = EXCLUDED.kind, ip_address = EXCLUDED.ip_address,
	zone = EXCLUDED.zone, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at;`,
		tableBoxes, vals,
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, qstr, args...)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (p *Postgres) DeleteBoxesExcept(ctx context.Context, kind string, keep []string) (int64, error) {
	args := []interface{}{kind}
	qstr := fmt.Sprintf("DELETE FROM %s WHERE kind = $1", tableBoxes)
	if len(keep) > 0 {
		in, inargs := toSqlIn(2, "id", keep)
		qstr = fmt.Sprintf("%s AND NOT %s", qstr, in)
		args = append(args, inargs...)
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, qstr+";", args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func toBoxSqlArgs(boxes []*structs.Box) (string, []interface{}) {
	now := timeNow()
	rows := []string{}
	args := []interface{}{}
	for _, b := range boxes {
		vals := []string{}
		for _, v := range []interface{}{b.ID, b.Kind, b.IPAddress, b.Zone, string(b.Status), now} {
			args = append(args, v)
			vals = append(vals, fmt.Sprintf("$%d", len(args)))
		}
		rows = append(rows, fmt.Sprintf("(%s)", strings.Join(vals, ", ")))
	}
	return strings.Join(rows, ", "), args
}

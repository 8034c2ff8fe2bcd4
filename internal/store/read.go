package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/paramedit/internal/param"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Get retrieves a single parameter by name.
// Returns ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, name string) (param.Parameter, error) {
	return getTx(ctx, s.db, name)
}

func getTx(ctx context.Context, q queryer, name string) (param.Parameter, error) {
	row := q.QueryRowContext(ctx, `
		SELECT name, expression, unit, value, comment, created_seq, updated_seq
		FROM parameters
		WHERE name = ?
	`, name)

	var p param.Parameter
	err := row.Scan(&p.Name, &p.Expression, &p.Unit, &p.Value, &p.Comment, &p.CreatedSeq, &p.UpdatedSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return param.Parameter{}, ErrNotFound
	}
	if err != nil {
		return param.Parameter{}, fmt.Errorf("get parameter: %w", err)
	}
	return p, nil
}

// List returns all parameters ordered by name.
func (s *Store) List(ctx context.Context) ([]param.Parameter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, expression, unit, value, comment, created_seq, updated_seq
		FROM parameters
		ORDER BY name ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("list parameters: %w", err)
	}
	defer rows.Close()

	var params []param.Parameter
	for rows.Next() {
		var p param.Parameter
		if err := rows.Scan(&p.Name, &p.Expression, &p.Unit, &p.Value, &p.Comment, &p.CreatedSeq, &p.UpdatedSeq); err != nil {
			return nil, fmt.Errorf("list parameters: scan: %w", err)
		}
		params = append(params, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parameters: %w", err)
	}
	return params, nil
}

// History returns change entries ordered by seq. An empty name returns the
// history of every parameter.
func (s *Store) History(ctx context.Context, name string) ([]param.Change, error) {
	query := `
		SELECT id, seq, op, name, old_expression, new_expression, old_unit, new_unit
		FROM changes
	`
	var args []any
	if name != "" {
		query += ` WHERE name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY seq ASC, id ASC COLLATE BINARY`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var changes []param.Change
	for rows.Next() {
		var c param.Change
		var op string
		if err := rows.Scan(&c.ID, &c.Seq, &op, &c.Name, &c.OldExpression, &c.NewExpression, &c.OldUnit, &c.NewUnit); err != nil {
			return nil, fmt.Errorf("read history: scan: %w", err)
		}
		c.Op = param.Op(op)
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return changes, nil
}

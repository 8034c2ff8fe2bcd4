package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/paramedit/internal/param"
)

// Insert adds a new parameter and records a create change.
// Returns ErrExists if the name is taken. The stored row, with its seq
// values filled in, is returned.
func (s *Store) Insert(ctx context.Context, p param.Parameter) (param.Parameter, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("insert parameter: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := getTx(ctx, tx, p.Name); err == nil {
		return param.Parameter{}, fmt.Errorf("insert parameter %q: %w", p.Name, ErrExists)
	} else if !errors.Is(err, ErrNotFound) {
		return param.Parameter{}, fmt.Errorf("insert parameter: %w", err)
	}

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("insert parameter: %w", err)
	}
	p.CreatedSeq = seq
	p.UpdatedSeq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO parameters
		(name, expression, unit, value, comment, created_seq, updated_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Expression, p.Unit, p.Value, p.Comment, p.CreatedSeq, p.UpdatedSeq)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("insert parameter: %w", err)
	}

	if err := s.writeChange(ctx, tx, param.Change{
		Seq:           seq,
		Op:            param.OpCreate,
		Name:          p.Name,
		NewExpression: p.Expression,
		NewUnit:       p.Unit,
	}); err != nil {
		return param.Parameter{}, fmt.Errorf("insert parameter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return param.Parameter{}, fmt.Errorf("insert parameter: commit: %w", err)
	}
	return p, nil
}

// UpdateExpression replaces the expression and value of an existing
// parameter in place and records an update change. The unit is unchanged.
// Returns ErrNotFound if the parameter does not exist.
func (s *Store) UpdateExpression(ctx context.Context, name, expression string, value float64) (param.Parameter, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("update parameter: begin tx: %w", err)
	}
	defer tx.Rollback()

	old, err := getTx(ctx, tx, name)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("update parameter %q: %w", name, err)
	}

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("update parameter: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE parameters
		SET expression = ?, value = ?, updated_seq = ?
		WHERE name = ?
	`, expression, value, seq, name)
	if err != nil {
		return param.Parameter{}, fmt.Errorf("update parameter: %w", err)
	}

	if err := s.writeChange(ctx, tx, param.Change{
		Seq:           seq,
		Op:            param.OpUpdate,
		Name:          name,
		OldExpression: old.Expression,
		NewExpression: expression,
		OldUnit:       old.Unit,
		NewUnit:       old.Unit,
	}); err != nil {
		return param.Parameter{}, fmt.Errorf("update parameter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return param.Parameter{}, fmt.Errorf("update parameter: commit: %w", err)
	}

	old.Expression = expression
	old.Value = value
	old.UpdatedSeq = seq
	return old, nil
}

// Delete removes a parameter and records a delete change.
// Returns ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete parameter: begin tx: %w", err)
	}
	defer tx.Rollback()

	old, err := getTx(ctx, tx, name)
	if err != nil {
		return fmt.Errorf("delete parameter %q: %w", name, err)
	}

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return fmt.Errorf("delete parameter: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM parameters WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete parameter: %w", err)
	}

	if err := s.writeChange(ctx, tx, param.Change{
		Seq:           seq,
		Op:            param.OpDelete,
		Name:          name,
		OldExpression: old.Expression,
		OldUnit:       old.Unit,
	}); err != nil {
		return fmt.Errorf("delete parameter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete parameter: commit: %w", err)
	}
	return nil
}

// writeChange appends a history entry. The ID is assigned here.
func (s *Store) writeChange(ctx context.Context, tx *sql.Tx, c param.Change) error {
	c.ID = s.ids.Generate()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO changes
		(id, seq, op, name, old_expression, new_expression, old_unit, new_unit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Seq, string(c.Op), c.Name, c.OldExpression, c.NewExpression, c.OldUnit, c.NewUnit)
	if err != nil {
		return fmt.Errorf("write change: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/girderhq/girder/internal/symbols"
	"github.com/girderhq/girder/internal/units"
)

// Worksheet is a named collection of variables, custom units, and
// calculation history.
type Worksheet struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Calculation is one entry of a worksheet's append-only history.
type Calculation struct {
	ID         int64
	Expression string
	Result     string
	Unit       string
	CreatedAt  time.Time
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// CreateWorksheet creates a worksheet, or returns the existing one
// when the name is already taken. Names are unique; the call is
// idempotent.
func (s *Store) CreateWorksheet(ctx context.Context, name, description string) (Worksheet, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Worksheet{}, fmt.Errorf("create worksheet: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	id := uuid.Must(uuid.NewV7()).String()
	ts := now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO worksheets (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, id, name, description, ts, ts)
	if err != nil {
		return Worksheet{}, fmt.Errorf("create worksheet: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Worksheet{}, fmt.Errorf("create worksheet: rows affected: %w", err)
	}

	var ws Worksheet
	if rowsAffected > 0 {
		ws = Worksheet{ID: id, Name: name, Description: description}
		ws.CreatedAt, _ = time.Parse(time.RFC3339Nano, ts)
		ws.UpdatedAt = ws.CreatedAt
	} else {
		// Conflict - the worksheet already exists, return it.
		ws, err = scanWorksheet(tx.QueryRowContext(ctx, `
			SELECT id, name, description, created_at, updated_at
			FROM worksheets WHERE name = ?
		`, name))
		if err != nil {
			return Worksheet{}, fmt.Errorf("create worksheet: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Worksheet{}, fmt.Errorf("create worksheet: commit: %w", err)
	}
	return ws, nil
}

// DeleteWorksheet removes a worksheet and, via foreign keys, its
// variables, custom units, and history.
func (s *Store) DeleteWorksheet(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM worksheets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete worksheet: %w", err)
	}
	return nil
}

// SaveVariable upserts a variable into a worksheet. Re-saving the
// same name replaces the value and keeps exactly one row.
func (s *Store) SaveVariable(ctx context.Context, worksheetID string, v symbols.Variable) error {
	valueJSON, err := marshalValue(v.Value)
	if err != nil {
		return fmt.Errorf("save variable: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO variables
		(worksheet_id, name, var_id, value, unit, description, scope, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(worksheet_id, name) DO UPDATE SET
			value = excluded.value,
			unit = excluded.unit,
			description = excluded.description,
			scope = excluded.scope
	`,
		worksheetID,
		v.Name,
		v.ID,
		valueJSON,
		v.Unit,
		v.Description,
		v.Scope,
		v.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save variable: %w", err)
	}
	return s.touch(ctx, worksheetID)
}

// DeleteVariable removes a variable from a worksheet. Deleting a
// missing name is a no-op.
func (s *Store) DeleteVariable(ctx context.Context, worksheetID, name string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM variables WHERE worksheet_id = ? AND name = ?
	`, worksheetID, name)
	if err != nil {
		return fmt.Errorf("delete variable: %w", err)
	}
	return s.touch(ctx, worksheetID)
}

// SaveCustomUnit upserts a caller-defined unit into a worksheet.
func (s *Store) SaveCustomUnit(ctx context.Context, worksheetID string, u units.Unit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_units
		(worksheet_id, symbol, name, dimension, factor, base_offset)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(worksheet_id, symbol) DO UPDATE SET
			name = excluded.name,
			dimension = excluded.dimension,
			factor = excluded.factor,
			base_offset = excluded.base_offset
	`,
		worksheetID,
		u.Symbol,
		u.Name,
		string(u.Dimension),
		u.Factor,
		u.Offset,
	)
	if err != nil {
		return fmt.Errorf("save custom unit: %w", err)
	}
	return s.touch(ctx, worksheetID)
}

// DeleteCustomUnit removes a caller-defined unit from a worksheet.
func (s *Store) DeleteCustomUnit(ctx context.Context, worksheetID, symbol string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM custom_units WHERE worksheet_id = ? AND symbol = ?
	`, worksheetID, symbol)
	if err != nil {
		return fmt.Errorf("delete custom unit: %w", err)
	}
	return s.touch(ctx, worksheetID)
}

// AppendCalculation appends one entry to a worksheet's history and
// returns its row id. History is never rewritten.
func (s *Store) AppendCalculation(ctx context.Context, worksheetID, expression, result, unit string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (worksheet_id, expression, result, unit, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, worksheetID, expression, result, unit, now())
	if err != nil {
		return 0, fmt.Errorf("append calculation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append calculation: last insert id: %w", err)
	}
	return id, nil
}

// touch bumps a worksheet's updated_at timestamp.
func (s *Store) touch(ctx context.Context, worksheetID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE worksheets SET updated_at = ? WHERE id = ?
	`, now(), worksheetID)
	if err != nil {
		return fmt.Errorf("touch worksheet: %w", err)
	}
	return nil
}

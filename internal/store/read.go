package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/girderhq/girder/internal/symbols"
	"github.com/girderhq/girder/internal/units"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = errors.New("not found")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorksheet(row rowScanner) (Worksheet, error) {
	var ws Worksheet
	var created, updated string
	if err := row.Scan(&ws.ID, &ws.Name, &ws.Description, &created, &updated); err != nil {
		return Worksheet{}, err
	}
	var err error
	if ws.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Worksheet{}, fmt.Errorf("parse created_at: %w", err)
	}
	if ws.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return Worksheet{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return ws, nil
}

// Worksheet fetches a worksheet by id.
func (s *Store) Worksheet(ctx context.Context, id string) (Worksheet, error) {
	ws, err := scanWorksheet(s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM worksheets WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Worksheet{}, fmt.Errorf("worksheet %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Worksheet{}, fmt.Errorf("get worksheet: %w", err)
	}
	return ws, nil
}

// WorksheetByName fetches a worksheet by its unique name.
func (s *Store) WorksheetByName(ctx context.Context, name string) (Worksheet, error) {
	ws, err := scanWorksheet(s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM worksheets WHERE name = ?
	`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Worksheet{}, fmt.Errorf("worksheet %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Worksheet{}, fmt.Errorf("get worksheet: %w", err)
	}
	return ws, nil
}

// Worksheets lists all worksheets ordered by name.
func (s *Store) Worksheets(ctx context.Context) ([]Worksheet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM worksheets ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}
	defer rows.Close()

	var out []Worksheet
	for rows.Next() {
		ws, err := scanWorksheet(rows)
		if err != nil {
			return nil, fmt.Errorf("list worksheets: %w", err)
		}
		out = append(out, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}
	return out, nil
}

// Variables lists a worksheet's variables ordered by name.
func (s *Store) Variables(ctx context.Context, worksheetID string) ([]symbols.Variable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, var_id, value, unit, description, scope, created_at
		FROM variables WHERE worksheet_id = ? ORDER BY name
	`, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	defer rows.Close()

	var out []symbols.Variable
	for rows.Next() {
		var v symbols.Variable
		var valueJSON, created string
		if err := rows.Scan(&v.Name, &v.ID, &valueJSON, &v.Unit, &v.Description, &v.Scope, &created); err != nil {
			return nil, fmt.Errorf("list variables: scan: %w", err)
		}
		if v.Value, err = unmarshalValue(valueJSON); err != nil {
			return nil, fmt.Errorf("list variables: %w", err)
		}
		if v.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("list variables: parse created_at: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	return out, nil
}

// CustomUnits lists a worksheet's caller-defined units ordered by
// symbol. The returned units carry Custom=true, ready for
// re-registration.
func (s *Store) CustomUnits(ctx context.Context, worksheetID string) ([]units.Unit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, name, dimension, factor, base_offset
		FROM custom_units WHERE worksheet_id = ? ORDER BY symbol
	`, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("list custom units: %w", err)
	}
	defer rows.Close()

	var out []units.Unit
	for rows.Next() {
		var u units.Unit
		var dim string
		if err := rows.Scan(&u.Symbol, &u.Name, &dim, &u.Factor, &u.Offset); err != nil {
			return nil, fmt.Errorf("list custom units: scan: %w", err)
		}
		u.Dimension = units.Dimension(dim)
		u.Custom = true
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list custom units: %w", err)
	}
	return out, nil
}

// Calculations returns the most recent history entries, newest first.
// limit <= 0 returns the whole history.
func (s *Store) Calculations(ctx context.Context, worksheetID string, limit int) ([]Calculation, error) {
	query := `
		SELECT id, expression, result, unit, created_at
		FROM calculations WHERE worksheet_id = ? ORDER BY id DESC
	`
	args := []any{worksheetID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		var c Calculation
		var created string
		if err := rows.Scan(&c.ID, &c.Expression, &c.Result, &c.Unit, &created); err != nil {
			return nil, fmt.Errorf("list calculations: scan: %w", err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("list calculations: parse created_at: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return out, nil
}

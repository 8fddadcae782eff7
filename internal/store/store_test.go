package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/girderhq/girder/internal/numeric"
	"github.com/girderhq/girder/internal/symbols"
	"github.com/girderhq/girder/internal/units"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestWorksheet(t *testing.T, s *Store, name string) Worksheet {
	t.Helper()
	ws, err := s.CreateWorksheet(context.Background(), name, "")
	if err != nil {
		t.Fatalf("CreateWorksheet(%q) failed: %v", name, err)
	}
	return ws
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
}

func TestOpen_SetsSchemaVersion(t *testing.T) {
	s := createTestStore(t)

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestCreateWorksheet_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.CreateWorksheet(ctx, "beam-design", "span checks")
	if err != nil {
		t.Fatalf("first CreateWorksheet failed: %v", err)
	}

	second, err := s.CreateWorksheet(ctx, "beam-design", "ignored")
	if err != nil {
		t.Fatalf("second CreateWorksheet failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("duplicate create returned different id: %s vs %s", first.ID, second.ID)
	}
	if second.Description != "span checks" {
		t.Errorf("existing description lost: %q", second.Description)
	}
}

func TestWorksheetByName_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.WorksheetByName(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for missing worksheet")
	}
}

func TestSaveVariable_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ws := createTestWorksheet(t, s, "sheet")

	matrix, err := numeric.NewMatrix([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}

	saved := []symbols.Variable{
		{Name: "F", ID: "v1", Value: numeric.Number(12.5), Unit: "kN", Description: "load"},
		{Name: "K", ID: "v2", Value: matrix},
		{Name: "z", ID: "v3", Value: numeric.Complex{Re: 3, Im: -4}},
	}
	for _, v := range saved {
		if err := s.SaveVariable(ctx, ws.ID, v); err != nil {
			t.Fatalf("SaveVariable(%s) failed: %v", v.Name, err)
		}
	}

	got, err := s.Variables(ctx, ws.ID)
	if err != nil {
		t.Fatalf("Variables failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d variables, want 3", len(got))
	}

	// Sorted by name: F, K, z.
	if got[0].Name != "F" || got[0].Unit != "kN" {
		t.Errorf("F round-trip wrong: %+v", got[0])
	}
	if n, ok := numeric.AsNumber(got[0].Value); !ok || n != 12.5 {
		t.Errorf("F value = %v, want 12.5", got[0].Value)
	}
	m, ok := got[1].Value.(numeric.Matrix)
	if !ok || m.Rows != 2 || m.Cols != 2 || m.Data[1][0] != 3 {
		t.Errorf("K matrix round-trip wrong: %+v", got[1].Value)
	}
	c, ok := got[2].Value.(numeric.Complex)
	if !ok || c.Re != 3 || c.Im != -4 {
		t.Errorf("z complex round-trip wrong: %+v", got[2].Value)
	}
}

func TestSaveVariable_UpsertReplacesValue(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ws := createTestWorksheet(t, s, "sheet")

	v := symbols.Variable{Name: "x", ID: "v1", Value: numeric.Number(1)}
	if err := s.SaveVariable(ctx, ws.ID, v); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	v.Value = numeric.Number(2)
	if err := s.SaveVariable(ctx, ws.ID, v); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := s.Variables(ctx, ws.ID)
	if err != nil {
		t.Fatalf("Variables failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows after upsert, want 1", len(got))
	}
	if n, _ := numeric.AsNumber(got[0].Value); n != 2 {
		t.Errorf("value = %v, want 2", got[0].Value)
	}
}

func TestCustomUnits_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ws := createTestWorksheet(t, s, "sheet")

	u := units.Unit{Symbol: "furlong", Name: "furlong", Dimension: units.Length, Factor: 201.168}
	if err := s.SaveCustomUnit(ctx, ws.ID, u); err != nil {
		t.Fatalf("SaveCustomUnit failed: %v", err)
	}

	got, err := s.CustomUnits(ctx, ws.ID)
	if err != nil {
		t.Fatalf("CustomUnits failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d units, want 1", len(got))
	}
	if got[0].Symbol != "furlong" || got[0].Factor != 201.168 || !got[0].Custom {
		t.Errorf("unit round-trip wrong: %+v", got[0])
	}
}

func TestCalculations_NewestFirstWithLimit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ws := createTestWorksheet(t, s, "sheet")

	for _, expr := range []string{"1+1", "2+2", "3+3"} {
		if _, err := s.AppendCalculation(ctx, ws.ID, expr, "x", ""); err != nil {
			t.Fatalf("AppendCalculation(%s) failed: %v", expr, err)
		}
	}

	got, err := s.Calculations(ctx, ws.ID, 2)
	if err != nil {
		t.Fatalf("Calculations failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Expression != "3+3" || got[1].Expression != "2+2" {
		t.Errorf("history order wrong: %q, %q", got[0].Expression, got[1].Expression)
	}
}

func TestDeleteWorksheet_Cascades(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ws := createTestWorksheet(t, s, "sheet")

	v := symbols.Variable{Name: "x", ID: "v1", Value: numeric.Number(1)}
	if err := s.SaveVariable(ctx, ws.ID, v); err != nil {
		t.Fatalf("SaveVariable failed: %v", err)
	}
	if _, err := s.AppendCalculation(ctx, ws.ID, "1+1", "2", ""); err != nil {
		t.Fatalf("AppendCalculation failed: %v", err)
	}

	if err := s.DeleteWorksheet(ctx, ws.ID); err != nil {
		t.Fatalf("DeleteWorksheet failed: %v", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM variables").Scan(&count); err != nil {
		t.Fatalf("count variables: %v", err)
	}
	if count != 0 {
		t.Errorf("variables not cascaded: %d rows remain", count)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM calculations").Scan(&count); err != nil {
		t.Fatalf("count calculations: %v", err)
	}
	if count != 0 {
		t.Errorf("calculations not cascaded: %d rows remain", count)
	}
}

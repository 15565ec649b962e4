package app

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"plotwin/plot"
)

func TestParseColumns_HeaderAndComments(t *testing.T) {
	in := "# exported spectrum\nlo, hi, counts\n1, 2, 10\n# gap\n2, 3, 12\n"
	cols, err := parseColumns("spec.csv", strings.NewReader(in), 3)
	if err != nil {
		t.Fatalf("parseColumns: %v", err)
	}
	want := [][]float64{{1, 2}, {2, 3}, {10, 12}}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("parseColumns=%v; want %v", cols, want)
	}
}

func TestParseColumns_Errors(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want string
	}{
		{"ragged", "1,2\n3,4\n5\n", "spec.csv:3: want 2 columns, got 1"},
		{"too few", "1\n2\n", "want at least 2 columns"},
		{"bad number", "1,2\n3,x\n", "spec.csv:2: column 2"},
		{"empty", "# nothing\n", "no data"},
		{"header only", "x,y\n", "no data"},
	}
	for _, tc := range tcs {
		_, err := parseColumns("spec.csv", strings.NewReader(tc.in), 2)
		if !errors.Is(err, plot.ErrConfig) || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: err=%v; want %q", tc.name, err, tc.want)
		}
	}
}

func TestCurveFromColumns_Symbols(t *testing.T) {
	cv := curveFromColumns([][]float64{{0, 1}, {2, 3}, {1.6, -1}})
	if !reflect.DeepEqual(cv.Symbols, []int{2, -1}) {
		t.Fatalf("Symbols=%v; want [2 -1]", cv.Symbols)
	}
	if cv = curveFromColumns([][]float64{{0}, {1}}); cv.Symbols != nil {
		t.Fatalf("Symbols=%v; want nil", cv.Symbols)
	}
}

func TestHistFromColumns_Ignore(t *testing.T) {
	h := histFromColumns([][]float64{{0, 1, 2}, {1, 2, 3}, {5, 6, 7}, {1, 1, 1}, {0, 1, 0}})
	if !reflect.DeepEqual(h.Ignore, []bool{false, true, false}) {
		t.Fatalf("Ignore=%v", h.Ignore)
	}
	if len(h.Err) != 3 {
		t.Fatalf("Err=%v", h.Err)
	}
}

func TestLoadCurve_MissingFile(t *testing.T) {
	if _, err := loadCurve("/nonexistent/curve.csv"); err == nil {
		t.Fatalf("loadCurve succeeded on a missing file")
	}
}

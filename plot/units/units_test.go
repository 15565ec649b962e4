package units

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestConvert(t *testing.T) {
	tcs := []struct {
		v        float64
		from, to Unit
		want     float64
	}{
		{v: 12.398419843320026, from: Angstrom, to: KeV, want: 1},
		{v: 1, from: KeV, to: EV, want: 1000},
		{v: 1, from: Nanometer, to: Angstrom, want: 10},
		{v: 1, from: KeV, to: Hz, want: 1 / 4.135667696e-18},
		{v: 5, from: MHz, to: MHz, want: 5},
	}
	for _, tc := range tcs {
		got, err := Convert(tc.v, tc.from, tc.to)
		if err != nil {
			t.Fatalf("Convert(%v,%v,%v): %v", tc.v, tc.from, tc.to, err)
		}
		if !near(got, tc.want) {
			t.Fatalf("Convert(%v,%v,%v)=%v; want %v", tc.v, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	for from := Unit(0); from < numUnits; from++ {
		for to := Unit(0); to < numUnits; to++ {
			v, _ := Convert(3.5, from, to)
			back, _ := Convert(v, to, from)
			if !near(back, 3.5) {
				t.Fatalf("%v->%v->%v = %v; want 3.5", from, to, from, back)
			}
		}
	}
}

func TestReverses(t *testing.T) {
	if !Reverses(Angstrom, KeV) || !Reverses(GHz, Nanometer) {
		t.Fatalf("wavelength <-> energy/frequency must reverse")
	}
	if Reverses(KeV, Hz) || Reverses(Angstrom, Meter) {
		t.Fatalf("same-direction conversions must not reverse")
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"A", "angstrom", "keV", "KEV", "MeV", "mm", "MHz"} {
		if _, err := Parse(name); err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
	}
	if u, _ := Parse("MeV"); u != MeV {
		t.Fatalf("Parse(MeV)=%v", u)
	}
	if _, err := Parse("furlong"); err == nil {
		t.Fatalf("Parse(furlong) succeeded")
	}
	if Unit(200).Valid() {
		t.Fatalf("Unit(200) valid")
	}
}

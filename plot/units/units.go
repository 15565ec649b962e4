// Package units converts X-axis values between wavelength, energy and
// frequency units.
package units

import (
	"fmt"
	"strings"
)

// Unit identifies an X-axis unit.
type Unit uint8

const (
	Angstrom Unit = iota
	Nanometer
	Micron
	Millimeter
	Centimeter
	Meter
	EV
	KeV
	MeV
	GeV
	TeV
	Hz
	KHz
	MHz
	GHz

	numUnits
)

type kind uint8

const (
	wavelength kind = iota
	energy
	frequency
)

type info struct {
	name  string
	label string
	kind  kind
	scale float64 // size of one unit in Angstrom, keV or Hz
}

var table = [numUnits]info{
	Angstrom:   {"A", "Wavelength [A]", wavelength, 1},
	Nanometer:  {"nm", "Wavelength [nm]", wavelength, 10},
	Micron:     {"um", "Wavelength [um]", wavelength, 1e4},
	Millimeter: {"mm", "Wavelength [mm]", wavelength, 1e7},
	Centimeter: {"cm", "Wavelength [cm]", wavelength, 1e8},
	Meter:      {"m", "Wavelength [m]", wavelength, 1e10},
	EV:         {"eV", "Energy [eV]", energy, 1e-3},
	KeV:        {"keV", "Energy [keV]", energy, 1},
	MeV:        {"MeV", "Energy [MeV]", energy, 1e3},
	GeV:        {"GeV", "Energy [GeV]", energy, 1e6},
	TeV:        {"TeV", "Energy [TeV]", energy, 1e9},
	Hz:         {"Hz", "Frequency [Hz]", frequency, 1},
	KHz:        {"kHz", "Frequency [kHz]", frequency, 1e3},
	MHz:        {"MHz", "Frequency [MHz]", frequency, 1e6},
	GHz:        {"GHz", "Frequency [GHz]", frequency, 1e9},
}

const (
	// hcKeVA is h*c in keV*Angstrom.
	hcKeVA = 12.398419843320026
	// cAs is the speed of light in Angstrom per second.
	cAs = 2.99792458e18
)

// Valid reports whether u names a known unit.
func (u Unit) Valid() bool { return u < numUnits }

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("unit(%d)", uint8(u))
	}
	return table[u].name
}

// Label returns the default axis label for u.
func (u Unit) Label() string {
	if !u.Valid() {
		return ""
	}
	return table[u].label
}

// Parse looks up a unit by name. Matching is case-insensitive except for
// the "m"/"M" prefixes, which are distinguished.
func Parse(name string) (Unit, error) {
	for i, in := range table {
		if in.name == name {
			return Unit(i), nil
		}
	}
	switch strings.ToLower(name) {
	case "angstrom", "a":
		return Angstrom, nil
	case "micron", "um":
		return Micron, nil
	case "ev":
		return EV, nil
	case "kev":
		return KeV, nil
	case "gev":
		return GeV, nil
	case "tev":
		return TeV, nil
	case "hz":
		return Hz, nil
	case "khz":
		return KHz, nil
	case "ghz":
		return GHz, nil
	}
	return 0, fmt.Errorf("unknown unit %q", name)
}

// Reverses reports whether converting from one unit to the other reverses
// the order of values (wavelength against energy or frequency).
func Reverses(from, to Unit) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return (table[from].kind == wavelength) != (table[to].kind == wavelength)
}

// Convert converts v from one unit to another. Conversions across
// wavelength and energy/frequency map 0 to +Inf.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.Valid() || !to.Valid() {
		return 0, fmt.Errorf("convert %v to %v: invalid unit", from, to)
	}
	if from == to {
		return v, nil
	}
	a := toAngstrom(v, from)
	return fromAngstrom(a, to), nil
}

func toAngstrom(v float64, u Unit) float64 {
	in := table[u]
	switch in.kind {
	case energy:
		return hcKeVA / (v * in.scale)
	case frequency:
		return cAs / (v * in.scale)
	default:
		return v * in.scale
	}
}

func fromAngstrom(a float64, u Unit) float64 {
	in := table[u]
	switch in.kind {
	case energy:
		return hcKeVA / a / in.scale
	case frequency:
		return cAs / a / in.scale
	default:
		return a / in.scale
	}
}

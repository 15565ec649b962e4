package render

import (
	"fmt"
	"math"
	"strings"
)

// DefaultAxisOpt draws both edges with numeric labels and major and minor
// ticks.
const DefaultAxisOpt = "BCNST"

// AxisOpt is a decoded axis option string.
//
//	B  edge at the low side       C  edge at the high side
//	N  numeric labels             T  major ticks
//	S  minor ticks                G  grid lines
//	L  logarithmic labels         A  zero axis
type AxisOpt struct {
	Low, High bool
	Numbers   bool
	Ticks     bool
	Minor     bool
	Grid      bool
	Log       bool
	ZeroAxis  bool
}

// ParseAxisOpt decodes an option string; unknown letters are ignored.
func ParseAxisOpt(opt string) AxisOpt {
	var a AxisOpt
	for _, r := range strings.ToUpper(opt) {
		switch r {
		case 'B':
			a.Low = true
		case 'C':
			a.High = true
		case 'N':
			a.Numbers = true
		case 'T':
			a.Ticks = true
		case 'S':
			a.Minor = true
		case 'G':
			a.Grid = true
		case 'L':
			a.Log = true
		case 'A':
			a.ZeroAxis = true
		}
	}
	return a
}

// ConfigureAxis returns opt with the log and numeric label flags set as
// requested, keeping every other flag in place.
func ConfigureAxis(opt string, isLog, hasNumbers bool) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(opt) {
		if r == 'L' || r == 'N' {
			continue
		}
		b.WriteRune(r)
	}
	if hasNumbers {
		b.WriteByte('N')
	}
	if isLog {
		b.WriteByte('L')
	}
	return b.String()
}

// Tick is one labelled position along an axis, in world coordinates.
type Tick struct {
	V     float64
	Label string
	Major bool
}

// Ticks lays out ticks across [min,max] aiming for roughly n major
// intervals. With log set, world values are decades and labels show 10^v.
func Ticks(min, max float64, n int, log bool) []Tick {
	if min > max {
		min, max = max, min
	}
	if !(max > min) || n <= 0 || math.IsInf(max-min, 0) {
		return nil
	}
	if log {
		return logTicks(min, max)
	}
	step := niceStep((max - min) / float64(n))
	minor := step / 5
	var ts []Tick
	start := math.Ceil(min/minor) * minor
	for i := 0; ; i++ {
		v := start + float64(i)*minor
		if v > max+minor*1e-9 {
			break
		}
		k := v / step
		major := math.Abs(k-math.Round(k)) < 1e-6
		t := Tick{V: v, Major: major}
		if major {
			t.Label = fmtAxis(v)
		}
		ts = append(ts, t)
		if len(ts) > 1000 {
			break
		}
	}
	return ts
}

func logTicks(min, max float64) []Tick {
	var ts []Tick
	for d := math.Floor(min); d <= max; d++ {
		if d >= min {
			ts = append(ts, Tick{V: d, Major: true, Label: fmtAxis(math.Pow(10, d))})
		}
		for m := 2; m < 10; m++ {
			v := d + math.Log10(float64(m))
			if v >= min && v <= max {
				ts = append(ts, Tick{V: v})
			}
		}
		if len(ts) > 1000 {
			break
		}
	}
	return ts
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	if pow == 0 || math.IsNaN(pow) || math.IsInf(pow, 0) {
		return 1
	}
	frac := raw / pow
	switch {
	case frac <= 1:
		return 1 * pow
	case frac <= 2:
		return 2 * pow
	case frac <= 5:
		return 5 * pow
	default:
		return 10 * pow
	}
}

func fmtAxis(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	av := math.Abs(v)
	switch {
	case av < 1e-12:
		return "0"
	case av >= 1e4 || av < 1e-3:
		return fmt.Sprintf("%.3g", v)
	case av == math.Trunc(av):
		return fmt.Sprintf("%.0f", v)
	default:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
	}
}

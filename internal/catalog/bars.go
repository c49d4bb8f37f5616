package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Steel constants

const (
	// SteelDensity is the density of reinforcing steel (kg/m³)
	SteelDensity = 7850.0

	// DefaultGrade is appended to generated bar type names
	DefaultGrade = "A500"
)

// StandardDiameters lists the nominal bar diameters offered for selection (mm).
// The back-bar diameter of the host reinforcement is chosen from this list.
var StandardDiameters = []int{6, 8, 10, 12, 14, 16, 18, 20, 22, 25, 28, 32, 36, 40}

// BarType is a reinforcing bar type available in the host document
type BarType struct {
	Name     string  `json:"name" toml:"name"`
	Diameter float64 `json:"diameter" toml:"diameter"` // nominal (model) diameter, mm
}

// Valid reports whether the bar type is resolved and has a usable diameter.
func (b BarType) Valid() bool {
	return b.Name != "" && b.Diameter > 0
}

// Area returns the nominal cross-section area (mm²)
func (b BarType) Area() float64 {
	return math.Pi * b.Diameter * b.Diameter / 4
}

// MassPerMeter returns the bar mass per running metre (kg/m)
func (b BarType) MassPerMeter() float64 {
	// mm² -> m² is 1e-6
	return b.Area() * 1e-6 * SteelDensity
}

func (b BarType) String() string {
	return b.Name
}

// NameFor builds the conventional bar type name for a diameter, e.g. "Ø12 A500".
func NameFor(diameter int) string {
	return fmt.Sprintf("Ø%d %s", diameter, DefaultGrade)
}

// Catalog is the list of bar types a document offers.
type Catalog []BarType

// Standard returns one bar type per standard diameter.
func Standard() Catalog {
	c := make(Catalog, 0, len(StandardDiameters))
	for _, d := range StandardDiameters {
		c = append(c, BarType{Name: NameFor(d), Diameter: float64(d)})
	}
	return c
}

// Lookup finds a bar type by name. Surrounding spaces are ignored.
func (c Catalog) Lookup(name string) (BarType, bool) {
	name = strings.TrimSpace(name)
	for _, b := range c {
		if b.Name == name {
			return b, true
		}
	}
	return BarType{}, false
}

// Names returns the bar type names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, b := range c {
		names[i] = b.Name
	}
	return names
}

// IsStandardDiameter reports whether d is one of StandardDiameters.
func IsStandardDiameter(d int) bool {
	for _, s := range StandardDiameters {
		if s == d {
			return true
		}
	}
	return false
}

// Nearest returns the bar type whose diameter is closest to d. Ties go to
// the first in catalog order.
func (c Catalog) Nearest(d float64) (BarType, bool) {
	var best BarType
	found := false
	for _, b := range c {
		if !b.Valid() {
			continue
		}
		if !found || math.Abs(b.Diameter-d) < math.Abs(best.Diameter-d) {
			best, found = b, true
		}
	}
	return best, found
}

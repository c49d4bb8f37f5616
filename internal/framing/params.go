package framing

import (
	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// Parameters holds the engineering inputs of a framing batch (mm).
// One value is shared read-only by every hole of the batch.
type Parameters struct {
	// Concrete cover to the outer faces
	UpCover   float64
	DownCover float64

	// Diameter of the host's own face reinforcement
	BackDiameter float64

	// Straight bars along the long edges
	LongBar       catalog.BarType
	LongAnchorage float64
	LongCount     int
	LongStep      float64

	// Straight bars along the transverse edges
	TransverseBar       catalog.BarType
	TransverseAnchorage float64
	TransverseCount     int
	TransverseStep      float64

	// U-shaped bars linking both faces
	BendBar    catalog.BarType
	BendLength float64
	BendStep   float64

	// Clearance between the opening edge and the first bar
	Offset float64
}

// Validate reports a ConfigurationError for the first field that is
// non-positive or a bar type that is not resolved.
func (p Parameters) Validate() error {
	lengths := []struct {
		name  string
		value float64
	}{
		{"up cover", p.UpCover},
		{"down cover", p.DownCover},
		{"back-bar diameter", p.BackDiameter},
		{"long anchorage", p.LongAnchorage},
		{"long step", p.LongStep},
		{"transverse anchorage", p.TransverseAnchorage},
		{"transverse step", p.TransverseStep},
		{"bend length", p.BendLength},
		{"bend step", p.BendStep},
		{"offset", p.Offset},
	}
	for _, f := range lengths {
		if !(f.value > 0) {
			return errors.Configuration(f.name, "must be positive, got %g", f.value)
		}
	}

	if p.LongCount <= 0 {
		return errors.Configuration("long count", "must be positive, got %d", p.LongCount)
	}
	if p.TransverseCount <= 0 {
		return errors.Configuration("transverse count", "must be positive, got %d", p.TransverseCount)
	}

	bars := []struct {
		name string
		bar  catalog.BarType
	}{
		{"long bar type", p.LongBar},
		{"transverse bar type", p.TransverseBar},
		{"bend bar type", p.BendBar},
	}
	for _, b := range bars {
		if !b.bar.Valid() {
			return errors.Configuration(b.name, "is not resolved (%q, diameter %g)", b.bar.Name, b.bar.Diameter)
		}
	}
	return nil
}

// WithCovers returns a copy of p using the given covers.
func (p Parameters) WithCovers(up, down float64) Parameters {
	p.UpCover = up
	p.DownCover = down
	return p
}

// cover holds the floor/wall arithmetic of cover and diameter stacking.
type cover struct {
	// straightOffset is the depth of a straight bar's axis below the top face.
	straightOffset func(p Parameters, d float64) float64
	// straightSpan is the distance between the two bars of a pair.
	straightSpan func(p Parameters, d, thickness float64) float64
	// bendOffset is the depth of a bent bar's top leg below the top face.
	bendOffset func(p Parameters, d float64) float64
	// bendHeight is the distance between the two legs of a bent bar.
	bendHeight func(p Parameters, d, thickness float64) float64
}

// Floors sit the frame under the top face reinforcement (two back-bar
// layers at the top, one at the bottom). Walls use the front cover on
// both faces.
var covers = map[host.Type]cover{
	host.Floor: {
		straightOffset: func(p Parameters, d float64) float64 {
			return p.UpCover + 2*p.BackDiameter + 0.5*d
		},
		straightSpan: func(p Parameters, d, thickness float64) float64 {
			return thickness - (p.UpCover + 2*p.BackDiameter + 0.5*d) - (p.DownCover + p.BackDiameter + 0.5*d)
		},
		bendOffset: func(p Parameters, d float64) float64 {
			return p.UpCover + p.BackDiameter + 0.5*d
		},
		bendHeight: func(p Parameters, d, thickness float64) float64 {
			return thickness - (p.UpCover + p.BackDiameter + 0.5*d) - (p.DownCover + 0.5*d)
		},
	},
	host.Wall: {
		straightOffset: func(p Parameters, d float64) float64 {
			return p.UpCover + 0.5*d
		},
		straightSpan: func(p Parameters, d, thickness float64) float64 {
			return thickness - 2*(p.UpCover+0.5*d)
		},
		bendOffset: func(p Parameters, d float64) float64 {
			return p.UpCover + 0.5*d
		},
		bendHeight: func(p Parameters, d, thickness float64) float64 {
			return thickness - 2*(p.UpCover+0.5*d)
		},
	},
}

// PairSpan returns the distance between the two straight bars of a pair
// of diameter d across a host of the given type and thickness.
func PairSpan(kind host.Type, p Parameters, d, thickness float64) (float64, error) {
	c, ok := covers[kind]
	if !ok {
		return 0, errors.Geometry("no cover rules for %s host", kind)
	}
	return c.straightSpan(p, d, thickness), nil
}

// BendHeight returns the leg-to-leg height of a bent bar.
func BendHeight(kind host.Type, p Parameters, thickness float64) (float64, error) {
	c, ok := covers[kind]
	if !ok {
		return 0, errors.Geometry("no cover rules for %s host", kind)
	}
	return c.bendHeight(p, p.BendBar.Diameter, thickness), nil
}

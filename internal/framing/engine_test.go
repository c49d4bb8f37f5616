package framing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/hole"
	"github.com/alexiusacademia/holeframe/internal/host"
)

func testParams() Parameters {
	return Parameters{
		UpCover:             20,
		DownCover:           25,
		BackDiameter:        12,
		LongBar:             catalog.BarType{Name: "Ø12 A500", Diameter: 12},
		LongAnchorage:       400,
		LongCount:           2,
		LongStep:            100,
		TransverseBar:       catalog.BarType{Name: "Ø10 A500", Diameter: 10},
		TransverseAnchorage: 300,
		TransverseCount:     3,
		TransverseStep:      150,
		BendBar:             catalog.BarType{Name: "Ø8 A500", Diameter: 8},
		BendLength:          300,
		BendStep:            300,
		Offset:              50,
	}
}

// testFrame derives a frame for a single opening of the given size.
func testFrame(t *testing.T, kind host.Type, thickness, d1, d2 float64) *hole.Frame {
	t.Helper()

	category, normal := "Floors", geom.Zero
	facing, hand := geom.AxisX, geom.AxisY
	if kind == host.Wall {
		category, normal = "Walls", geom.V(0, -1, 0)
		facing, hand = geom.V(0, -1, 0), geom.AxisX
	}
	names := host.DimensionParams[kind]

	m := &host.Model{
		Hosts: []host.Element{{ID: "X", Category: category, Thickness: thickness, Normal: normal}},
		Openings: []host.Opening{{
			ID:         "H",
			Host:       "X",
			Category:   "Generic Models",
			Family:     "Hole",
			Facing:     facing,
			Hand:       hand,
			Parameters: map[string]float64{names[0]: d1, names[1]: d2},
		}},
	}
	require.NoError(t, m.Index())

	f, err := hole.Derive(m, "H")
	require.NoError(t, err)
	return f
}

func assertVec(t *testing.T, want, got geom.Vec, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-9, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, 1e-9, msgAndArgs...)
}

func TestLayoutFloorCounts(t *testing.T) {
	specs, err := Layout(testFrame(t, host.Floor, 250, 1000, 600), testParams())
	require.NoError(t, err)

	var straight, bentSets int
	for _, s := range specs {
		switch s.Kind {
		case Straight:
			straight++
		case Bent:
			bentSets++
		}
	}
	// 2 sides x 2 long + 2 sides x 3 transverse
	assert.Equal(t, 10, straight)
	assert.Equal(t, 4, bentSets)
	assert.Len(t, specs, 14)
}

func TestLayoutFloorLongStraight(t *testing.T) {
	specs, err := Layout(testFrame(t, host.Floor, 250, 1000, 600), testParams())
	require.NoError(t, err)

	base := specs[0]
	assert.Equal(t, Straight, base.Kind)
	assert.Equal(t, "long+", base.Role.String())
	assert.Equal(t, 0, base.Copy)
	assert.Len(t, base.Shape, 2)

	// anchorage extends the 1000 mm edge by 400 mm at both ends
	assertVec(t, geom.V(-900, 0, 0), base.Shape[0])
	assertVec(t, geom.V(900, 0, 0), base.Shape[1])

	// half the 600 mm transverse curve plus the 50 mm offset, then
	// 20 cover + 2x12 back bars + 6 half diameter below the top
	pts := base.Points()
	assertVec(t, geom.V(-900, 350, -50), pts[0])
	assertVec(t, geom.V(900, 350, -50), pts[1])

	assertVec(t, geom.V(0, 0, -1), base.Direction)
	assert.Equal(t, 2, base.Layout.Count)
	// 250 - (20+24+6) - (25+12+6)
	assert.InDelta(t, 157.0, base.Layout.Spacing, 1e-9)
	assert.False(t, base.Layout.Symmetric)

	other := specs[1]
	assert.Equal(t, "long-", other.Role.String())
	assertVec(t, geom.V(-900, -350, -50), other.Points()[0])

	// replicas step outward on their own side
	assert.Equal(t, 1, specs[2].Copy)
	assertVec(t, geom.V(-900, 450, -50), specs[2].Points()[0])
	assertVec(t, geom.V(-900, -450, -50), specs[3].Points()[0])
}

func TestLayoutFloorTransverseStraight(t *testing.T) {
	specs, err := Layout(testFrame(t, host.Floor, 250, 1000, 600), testParams())
	require.NoError(t, err)

	tr := specs[4:10]
	for _, s := range tr {
		assert.Equal(t, "transverse", s.Role.Main)
		assert.Equal(t, "Ø10 A500", s.Bar.Name)
		// 250 - (20+24+5) - (25+12+5)
		assert.InDelta(t, 159.0, s.Layout.Spacing, 1e-9)
	}

	assertVec(t, geom.V(550, -600, -49), tr[0].Points()[0])
	assertVec(t, geom.V(550, 600, -49), tr[0].Points()[1])
	assertVec(t, geom.V(-550, -600, -49), tr[1].Points()[0])
	assertVec(t, geom.V(700, -600, -49), tr[2].Points()[0])
	assertVec(t, geom.V(-700, -600, -49), tr[3].Points()[0])
	assertVec(t, geom.V(850, -600, -49), tr[4].Points()[0])
	assert.Equal(t, 2, tr[4].Copy)
}

func TestLayoutFloorBent(t *testing.T) {
	specs, err := Layout(testFrame(t, host.Floor, 250, 1000, 600), testParams())
	require.NoError(t, err)

	b := specs[10]
	require.Equal(t, Bent, b.Kind)
	assert.Equal(t, "long+", b.Role.String())
	require.Len(t, b.Shape, 4)

	// height 250 - (20+12+4) - (25+4) = 185
	assertVec(t, geom.V(-500, 300, 0), b.Shape[0])
	assertVec(t, geom.V(-500, 0, 0), b.Shape[1])
	assertVec(t, geom.V(-500, 0, -185), b.Shape[2])
	assertVec(t, geom.V(-500, 300, -185), b.Shape[3])

	// sub move 300+50-8, down 20+12+4, centered by (1000-3*300)/2
	pts := b.Points()
	assertVec(t, geom.V(-450, 642, -36), pts[0])
	assertVec(t, geom.V(-450, 342, -36), pts[1])
	assertVec(t, geom.V(-450, 342, -221), pts[2])
	assertVec(t, geom.V(-450, 642, -221), pts[3])

	assertVec(t, geom.AxisX, b.Direction)
	assert.Equal(t, LinearLayout{Count: 4, Spacing: 300}, b.Layout)

	inst := b.Instances()
	require.Len(t, inst, 4)
	assertVec(t, geom.V(450, 342, -36), inst[3][1])

	assert.Equal(t, "long-", specs[11].Role.String())
	assertVec(t, geom.V(-450, -342, -36), specs[11].Points()[1])

	tr := specs[12]
	assert.Equal(t, "transverse+", tr.Role.String())
	// 600 long transverse curve: 2 bars, centered by (600-300)/2
	assert.Equal(t, 2, tr.Layout.Count)
	assertVec(t, geom.V(542, -150, -36), tr.Points()[1])
	assertVec(t, geom.V(-542, -150, -36), specs[13].Points()[1])
}

func TestLayoutWall(t *testing.T) {
	p := testParams()
	f := testFrame(t, host.Wall, 200, 900, 600)

	specs, err := Layout(f, p)
	require.NoError(t, err)

	base := specs[0]
	// wall normal faces -Y, bars go into the wall along +Y
	assertVec(t, geom.V(0, 1, 0), base.Direction)
	// 200 - 2*(20+6)
	assert.InDelta(t, 148.0, base.Layout.Spacing, 1e-9)

	// long curve along X at mid thickness (y=-100), mid height (z=300)
	pts := base.Points()
	assertVec(t, geom.V(-850, -100+26, 300+350), pts[0])

	bent := specs[len(specs)-4]
	// height 200 - 2*(20+4), offset 24
	assert.InDelta(t, 152.0, bent.Shape[2].Sub(bent.Shape[1]).Length(), 1e-9)
	assert.InDelta(t, -100+24, bent.Points()[1].Y, 1e-9)
}

func TestPairSpanWall(t *testing.T) {
	p := testParams()
	span, err := PairSpan(host.Wall, p, 12, 200)
	require.NoError(t, err)
	assert.InDelta(t, 148.0, span, 1e-9)

	_, err = PairSpan(host.Unknown, p, 12, 200)
	assert.True(t, errors.Is(err, errors.ErrCodeGeometry))
}

func TestBendHeight(t *testing.T) {
	h, err := BendHeight(host.Floor, testParams(), 250)
	require.NoError(t, err)
	assert.InDelta(t, 185.0, h, 1e-9)

	h, err = BendHeight(host.Wall, testParams(), 200)
	require.NoError(t, err)
	assert.InDelta(t, 152.0, h, 1e-9)
}

func TestBentCount(t *testing.T) {
	tests := []struct {
		name      string
		length    float64
		step      float64
		wantCount int
		wantShift float64
	}{
		{"1000 by 300", 1000, 300, 4, 50},
		{"exact multiple", 900, 300, 3, 150},
		{"rounding noise", 900.0000000000001, 300, 3, 150},
		{"shorter than step", 200, 300, 1, 100},
		{"single step", 300, 300, 1, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCount, BentCount(tt.length, tt.step))
			assert.InDelta(t, tt.wantShift, CenteringOffset(tt.length, tt.step), 1e-6)
		})
	}
	assert.Equal(t, 1, BentCount(1000, 0))
}

func TestLayoutSingleBentBar(t *testing.T) {
	p := testParams()
	p.BendStep = 2000

	specs, err := Layout(testFrame(t, host.Floor, 250, 1000, 600), p)
	require.NoError(t, err)
	for _, s := range specs[10:] {
		assert.Equal(t, Single, s.Layout)
		assert.Len(t, s.Instances(), 1)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	f := testFrame(t, host.Floor, 250, 1000, 600)
	a, err := Layout(f, testParams())
	require.NoError(t, err)
	b, err := Layout(f, testParams())
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Points(), b[i].Points())
		assert.Equal(t, a[i].Layout, b[i].Layout)
	}
}

func TestLayoutSwappedDimensions(t *testing.T) {
	a, err := Layout(testFrame(t, host.Floor, 250, 1000, 600), testParams())
	require.NoError(t, err)
	b, err := Layout(testFrame(t, host.Floor, 250, 600, 1000), testParams())
	require.NoError(t, err)

	// long bars always follow the 1000 mm edge
	assert.InDelta(t, 1800.0, a[0].Points().Length(), 1e-9)
	assert.InDelta(t, 1800.0, b[0].Points().Length(), 1e-9)
}

func TestLayoutConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"up cover", func(p *Parameters) { p.UpCover = 0 }},
		{"down cover", func(p *Parameters) { p.DownCover = -1 }},
		{"back diameter", func(p *Parameters) { p.BackDiameter = 0 }},
		{"long anchorage", func(p *Parameters) { p.LongAnchorage = 0 }},
		{"long count", func(p *Parameters) { p.LongCount = 0 }},
		{"long step", func(p *Parameters) { p.LongStep = 0 }},
		{"transverse anchorage", func(p *Parameters) { p.TransverseAnchorage = 0 }},
		{"transverse count", func(p *Parameters) { p.TransverseCount = -2 }},
		{"transverse step", func(p *Parameters) { p.TransverseStep = 0 }},
		{"bend length", func(p *Parameters) { p.BendLength = 0 }},
		{"bend step", func(p *Parameters) { p.BendStep = 0 }},
		{"offset", func(p *Parameters) { p.Offset = 0 }},
		{"unresolved long bar", func(p *Parameters) { p.LongBar = catalog.BarType{} }},
		{"transverse bar without diameter", func(p *Parameters) { p.TransverseBar.Diameter = 0 }},
		{"unresolved bend bar", func(p *Parameters) { p.BendBar.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)

			// parameters are checked before the frame
			specs, err := Layout(nil, p)
			assert.Nil(t, specs)
			assert.True(t, errors.Is(err, errors.ErrCodeConfiguration), "got %v", err)
		})
	}
}

func TestLayoutGeometryErrors(t *testing.T) {
	specs, err := Layout(nil, testParams())
	assert.Nil(t, specs)
	assert.True(t, errors.Is(err, errors.ErrCodeGeometry))

	// 60 mm slab cannot take 20+24 top and 25+12 bottom cover
	specs, err = Layout(testFrame(t, host.Floor, 60, 1000, 600), testParams())
	assert.Nil(t, specs)
	assert.True(t, errors.Is(err, errors.ErrCodeGeometry))
}

func TestWithCovers(t *testing.T) {
	p := testParams().WithCovers(30, 35)
	assert.Equal(t, 30.0, p.UpCover)
	assert.Equal(t, 35.0, p.DownCover)
	assert.Equal(t, 20.0, testParams().UpCover)
}

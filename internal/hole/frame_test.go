package hole

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// stubProvider serves a single opening "H" in host "X".
type stubProvider struct {
	kind      host.Type
	thickness float64
	normal    geom.Vec
	facing    geom.Vec
	hand      geom.Vec
	d1, d2    float64
	point     geom.Vec
}

func (s *stubProvider) Host(opening host.Ref) (host.Ref, error) {
	if opening != "H" {
		return "", errors.New(errors.ErrCodeNotFound, "opening %s not found", opening)
	}
	return "X", nil
}
func (s *stubProvider) Category(host.Ref) host.Type                   { return s.kind }
func (s *stubProvider) Thickness(host.Ref) float64                    { return s.thickness }
func (s *stubProvider) FaceNormal(host.Ref) geom.Vec                  { return s.normal }
func (s *stubProvider) Axes(host.Ref) (geom.Vec, geom.Vec)            { return s.facing, s.hand }
func (s *stubProvider) OpeningDimensions(host.Ref) (float64, float64) { return s.d1, s.d2 }
func (s *stubProvider) InsertionPoint(host.Ref) geom.Vec              { return s.point }

func floorStub(d1, d2 float64) *stubProvider {
	return &stubProvider{
		kind:      host.Floor,
		thickness: 250,
		facing:    geom.AxisX,
		hand:      geom.AxisY,
		d1:        d1,
		d2:        d2,
		point:     geom.V(1000, 2000, 3000),
	}
}

func wallStub(d1, d2 float64) *stubProvider {
	return &stubProvider{
		kind:      host.Wall,
		thickness: 200,
		normal:    geom.V(0, -2, 0), // not normalized on purpose
		facing:    geom.V(0, -1, 0),
		hand:      geom.AxisX,
		d1:        d1,
		d2:        d2,
		point:     geom.V(0, 0, 500),
	}
}

func assertVec(t *testing.T, want, got geom.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "X")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "Y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "Z")
}

func TestDeriveFloor(t *testing.T) {
	f, err := Derive(floorStub(600, 400), "H")
	require.NoError(t, err)

	assert.Equal(t, host.Floor, f.HostType())
	assert.Equal(t, host.Ref("X"), f.Host())
	assert.Equal(t, host.Ref("H"), f.Opening())
	assert.Equal(t, 250.0, f.Thickness())
	assertVec(t, geom.AxisZ, f.FaceNormal())
	assertVec(t, geom.AxisX, f.Orientation())
	assertVec(t, geom.V(1000, 2000, 3000), f.Location())

	assert.Equal(t, 400.0, f.Width())
	assert.Equal(t, 600.0, f.Length())

	lc := f.LengthCurve()
	assertVec(t, geom.V(700, 2000, 3000), lc.Start)
	assertVec(t, geom.V(1300, 2000, 3000), lc.End)

	wc := f.WidthCurve()
	assertVec(t, geom.V(1000, 1800, 3000), wc.Start)
	assertVec(t, geom.V(1000, 2200, 3000), wc.End)

	assert.Equal(t, lc, f.LongCurve())
	assert.Equal(t, wc, f.TransverseCurve())
}

func TestDeriveWall(t *testing.T) {
	f, err := Derive(wallStub(900, 600), "H")
	require.NoError(t, err)

	assertVec(t, geom.V(0, -1, 0), f.FaceNormal())
	assertVec(t, geom.AxisX, f.Orientation())
	// half thickness along the normal, half the width parameter up
	assertVec(t, geom.V(0, -100, 800), f.Location())

	assertVec(t, geom.V(-450, -100, 800), f.LengthCurve().Start)
	// orientation rotated a quarter turn about -Y points to +Z
	assertVec(t, geom.AxisZ, f.WidthCurve().Direction())
	assert.InDelta(t, 600.0, f.WidthCurve().Length(), 1e-9)
}

func TestDeriveCanonicalDimensions(t *testing.T) {
	pairs := [][2]float64{{600, 400}, {400, 600}, {500, 500}, {1, 2000}, {2000, 1}}
	for _, pr := range pairs {
		t.Run(fmt.Sprintf("%gx%g", pr[0], pr[1]), func(t *testing.T) {
			for _, p := range []*stubProvider{floorStub(pr[0], pr[1]), wallStub(pr[0], pr[1])} {
				f, err := Derive(p, "H")
				require.NoError(t, err)

				assert.Equal(t, min(pr[0], pr[1]), f.Width())
				assert.Equal(t, max(pr[0], pr[1]), f.Length())
				assert.GreaterOrEqual(t, f.LongCurve().Length(), f.TransverseCurve().Length())
				assert.InDelta(t, f.Length(), f.LongCurve().Length(), 1e-9)
				assert.InDelta(t, f.Width(), f.TransverseCurve().Length(), 1e-9)
				assert.InDelta(t, 1.0, f.FaceNormal().Length(), 1e-12)
				if pr[0] == pr[1] {
					// equal dimensions: the width curve is taken as the long curve
					assert.Equal(t, f.WidthCurve(), f.LongCurve())
					assert.Equal(t, f.LengthCurve(), f.TransverseCurve())
				}
			}
		})
	}
}

func TestDeriveLongCurveFollowsMeasuredLength(t *testing.T) {
	// width parameter larger than the length parameter
	f, err := Derive(floorStub(300, 900), "H")
	require.NoError(t, err)

	assert.Equal(t, f.WidthCurve(), f.LongCurve())
	assert.Equal(t, f.LengthCurve(), f.TransverseCurve())
	assert.InDelta(t, 900.0, f.LongCurve().Length(), 1e-9)
}

func TestDeriveGeometryErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*stubProvider)
	}{
		{"unknown host", func(s *stubProvider) { s.kind = host.Unknown }},
		{"zero width", func(s *stubProvider) { s.d2 = 0 }},
		{"zero length", func(s *stubProvider) { s.d1 = 0 }},
		{"negative dimension", func(s *stubProvider) { s.d1 = -10 }},
		{"no thickness", func(s *stubProvider) { s.thickness = 0 }},
		{"no orientation", func(s *stubProvider) { s.facing = geom.Zero }},
		{"orientation along normal", func(s *stubProvider) { s.facing = geom.V(0, 0, -1) }},
		{"tilted orientation", func(s *stubProvider) { s.facing = geom.V(1, 0, 1) }},
		{"slightly tilted orientation", func(s *stubProvider) { s.facing = geom.V(1, 0, 0.01) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := floorStub(600, 400)
			tt.mutate(s)

			f, err := Derive(s, "H")
			assert.Nil(t, f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeGeometry), "got %v", err)
		})
	}
}

func TestDeriveDropsOrientationNoise(t *testing.T) {
	s := floorStub(600, 400)
	s.facing = geom.V(1, 0, 1e-8)

	f, err := Derive(s, "H")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, f.Orientation().Dot(f.FaceNormal()), 1e-15)
	assert.InDelta(t, 0.0, f.LengthCurve().Direction().Dot(f.WidthCurve().Direction()), 1e-12)
	assert.InDelta(t, 1.0, f.Orientation().Length(), 1e-12)
}

func TestDeriveWallWithoutNormal(t *testing.T) {
	s := wallStub(900, 600)
	s.normal = geom.Zero

	_, err := Derive(s, "H")
	assert.True(t, errors.Is(err, errors.ErrCodeGeometry))
}

func TestDeriveUnknownOpening(t *testing.T) {
	_, err := Derive(floorStub(600, 400), "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestDeriveAll(t *testing.T) {
	frames, err := DeriveAll(floorStub(600, 400), []host.Ref{"H", "H"})
	require.NoError(t, err)
	assert.Len(t, frames, 2)

	_, err = DeriveAll(floorStub(600, 0), []host.Ref{"H"})
	assert.True(t, errors.Is(err, errors.ErrCodeGeometry))
}

func TestCheckNilFrame(t *testing.T) {
	var f *Frame
	assert.True(t, errors.Is(f.Check(), errors.ErrCodeGeometry))
	assert.True(t, errors.Is((&Frame{}).Check(), errors.ErrCodeGeometry))
}

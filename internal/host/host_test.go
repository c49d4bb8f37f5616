package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/geom"
)

const sampleModel = `{
  "title": "Block A",
  "bar_types": [{"name": "Ø12 A500", "diameter": 12}],
  "hosts": [
    {"id": "F1", "category": "Перекрытия", "thickness": 250, "cover_up": 25, "cover_down": 30},
    {"id": "W1", "category": "Walls", "thickness": 200, "normal": {"x": 0, "y": -1, "z": 0}}
  ],
  "openings": [
    {"id": "H1", "host": "F1", "category": "Обобщенные модели", "family": "Отверстие прямоугольное",
     "facing": {"x": 1, "y": 0, "z": 0}, "hand": {"x": 0, "y": 1, "z": 0},
     "point": {"x": 1000, "y": 2000, "z": 3000},
     "parameters": {"мод_ФОП_Габарит А": 600, "мод_ФОП_Габарит Б": 400}},
    {"id": "H2", "host": "W1", "category": "Generic Models", "family": "Wall Opening",
     "facing": {"x": 0, "y": -1, "z": 0}, "hand": {"x": 1, "y": 0, "z": 0},
     "point": {"x": 0, "y": 0, "z": 0},
     "parameters": {"ФОП_РАЗМ_Ширина": 900}},
    {"id": "D1", "host": "W1", "category": "Doors", "family": "Single door"}
  ]
}`

func TestParseModel(t *testing.T) {
	m, err := ParseModel([]byte(sampleModel), "")
	require.NoError(t, err)

	assert.Equal(t, "Block A", m.Title)
	assert.Equal(t, []Ref{"H1", "H2"}, m.Selectable())

	host, err := m.Host("H1")
	require.NoError(t, err)
	assert.Equal(t, Ref("F1"), host)
	assert.Equal(t, Floor, m.Category("F1"))
	assert.Equal(t, Wall, m.Category("W1"))
	assert.Equal(t, 250.0, m.Thickness("F1"))
	assert.Equal(t, geom.V(0, -1, 0), m.FaceNormal("W1"))

	facing, hand := m.Axes("H1")
	assert.Equal(t, geom.AxisX, facing)
	assert.Equal(t, geom.AxisY, hand)
	assert.Equal(t, geom.V(1000, 2000, 3000), m.InsertionPoint("H1"))

	d1, d2 := m.OpeningDimensions("H1")
	assert.Equal(t, 600.0, d1)
	assert.Equal(t, 400.0, d2)

	// missing width parameter reads as zero
	d1, d2 = m.OpeningDimensions("H2")
	assert.Equal(t, 900.0, d1)
	assert.Equal(t, 0.0, d2)

	up, down, ok := m.Covers("F1")
	assert.True(t, ok)
	assert.Equal(t, 25.0, up)
	assert.Equal(t, 30.0, down)

	_, _, ok = m.Covers("W1")
	assert.False(t, ok)

	b, ok := m.Catalog().Lookup("Ø12 A500")
	assert.True(t, ok)
	assert.Equal(t, 12.0, b.Diameter)
}

func TestParseModelUnknownOpening(t *testing.T) {
	m, err := ParseModel([]byte(sampleModel), "")
	require.NoError(t, err)

	_, err = m.Host("nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	assert.Equal(t, Unknown, m.Category("nope"))
	d1, d2 := m.OpeningDimensions("nope")
	assert.Zero(t, d1)
	assert.Zero(t, d2)
}

func TestParseModelInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad json", `{"hosts": [`},
		{"duplicate host", `{"hosts": [{"id": "A"}, {"id": "A"}]}`},
		{"missing host id", `{"hosts": [{"category": "Walls"}]}`},
		{"dangling host ref", `{"hosts": [{"id": "A"}], "openings": [{"id": "H", "host": "B"}]}`},
		{"duplicate opening", `{"hosts": [{"id": "A"}], "openings": [{"id": "H", "host": "A"}, {"id": "H", "host": "A"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.doc), "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestParseModelLegacyEncoding(t *testing.T) {
	// Ø has no code point in windows-1251
	doc := strings.ReplaceAll(sampleModel, "Ø", "d")
	encoded, err := charmap.Windows1251.NewEncoder().String(doc)
	require.NoError(t, err)

	m, err := ParseModel([]byte(encoded), "windows-1251")
	require.NoError(t, err)
	assert.Equal(t, Floor, m.Category("F1"))
	d1, _ := m.OpeningDimensions("H1")
	assert.Equal(t, 600.0, d1)

	_, err = ParseModel([]byte(encoded), "ebcdic")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleModel), 0o644))

	m, err := LoadModel(path, "utf-8")
	require.NoError(t, err)
	assert.Len(t, m.Openings, 3)

	_, err = LoadModel(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestDefaultCatalog(t *testing.T) {
	m, err := ParseModel([]byte(`{"hosts": []}`), "")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Catalog())
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		category string
		want     Type
	}{
		{"Floors", Floor},
		{"ПЕРЕКРЫТИЯ", Floor},
		{" Walls ", Wall},
		{"Стены", Wall},
		{"Roofs", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.category))
		})
	}
}

func TestIsOpening(t *testing.T) {
	tests := []struct {
		name     string
		category string
		family   string
		want     bool
	}{
		{"russian hole", "Обобщенные модели", "ОТВЕРСТИЕ в плите", true},
		{"russian opening", "Обобщенные модели", "Проем_стена", true},
		{"english", "Generic Models", "Rect Opening", true},
		{"hole keyword", "generic models", "Slab hole 300", true},
		{"wrong category", "Doors", "Opening", false},
		{"no keyword", "Generic Models", "Light fixture", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpening(tt.category, tt.family))
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "floor", Floor.String())
	assert.Equal(t, "wall", Wall.String())
	assert.Equal(t, "unknown", Unknown.String())
}

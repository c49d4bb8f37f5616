package host

import (
	"encoding/json"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/geom"
)

// Model is a host document read from a JSON file. It plays the part of the
// BIM platform's element queries.
type Model struct {
	Title    string          `json:"title"`
	BarTypes catalog.Catalog `json:"bar_types,omitempty"`
	Hosts    []Element       `json:"hosts"`
	Openings []Opening       `json:"openings"`

	hosts    map[Ref]*Element
	openings map[Ref]*Opening
}

// Element is a floor slab or wall
type Element struct {
	ID        Ref      `json:"id"`
	Category  string   `json:"category"`
	Thickness float64  `json:"thickness"` // mm
	Normal    geom.Vec `json:"normal"`    // walls: orientation vector, exterior side

	// Concrete cover assigned to the element (mm), 0 when not modelled
	CoverUp   float64 `json:"cover_up,omitempty"`
	CoverDown float64 `json:"cover_down,omitempty"`
}

// Opening is a family instance cutting a rectangular hole through a host
type Opening struct {
	ID       Ref      `json:"id"`
	Host     Ref      `json:"host"`
	Category string   `json:"category"`
	Family   string   `json:"family"`
	Facing   geom.Vec `json:"facing"`
	Hand     geom.Vec `json:"hand"`
	Point    geom.Vec `json:"point"` // insertion point

	// Named instance parameters (mm)
	Parameters map[string]float64 `json:"parameters"`
}

// legacyEncodings are the single-byte code pages older model exports use.
var legacyEncodings = map[string]encoding.Encoding{
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"cp866":        charmap.CodePage866,
}

// LoadModel reads a model file. enc names the file's character encoding;
// "" or "utf-8" reads it as is.
func LoadModel(path, enc string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read model %s", path)
	}
	return ParseModel(data, enc)
}

// ParseModel decodes and indexes a model document.
func ParseModel(data []byte, enc string) (*Model, error) {
	name := strings.ToLower(strings.TrimSpace(enc))
	if name != "" && name != "utf-8" && name != "utf8" {
		e, ok := legacyEncodings[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported model encoding %q", enc)
		}
		decoded, err := e.NewDecoder().Bytes(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode model as %s", enc)
		}
		data = decoded
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse model")
	}
	if err := m.Index(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Index builds the id lookups and checks every opening references a known
// host. ParseModel calls it; models assembled in code must call it before use.
func (m *Model) Index() error {
	m.hosts = make(map[Ref]*Element, len(m.Hosts))
	m.openings = make(map[Ref]*Opening, len(m.Openings))

	for i := range m.Hosts {
		h := &m.Hosts[i]
		if h.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "host %d has no id", i+1)
		}
		if _, dup := m.hosts[h.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate host id %s", h.ID)
		}
		m.hosts[h.ID] = h
	}
	for i := range m.Openings {
		o := &m.Openings[i]
		if o.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "opening %d has no id", i+1)
		}
		if _, dup := m.openings[o.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate opening id %s", o.ID)
		}
		if _, ok := m.hosts[o.Host]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "opening %s references unknown host %q", o.ID, o.Host)
		}
		m.openings[o.ID] = o
	}
	return nil
}

// Catalog returns the model's bar types, or the standard catalog when the
// model lists none.
func (m *Model) Catalog() catalog.Catalog {
	if len(m.BarTypes) == 0 {
		return catalog.Standard()
	}
	return m.BarTypes
}

// Selectable returns the ids of openings that pass the opening filter, in
// file order.
func (m *Model) Selectable() []Ref {
	var refs []Ref
	for _, o := range m.Openings {
		if IsOpening(o.Category, o.Family) {
			refs = append(refs, o.ID)
		}
	}
	return refs
}

// Opening returns the opening with the given id.
func (m *Model) Opening(ref Ref) (*Opening, bool) {
	o, ok := m.openings[ref]
	return o, ok
}

// Host implements Provider.
func (m *Model) Host(opening Ref) (Ref, error) {
	o, ok := m.openings[opening]
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "opening %s not found", opening)
	}
	return o.Host, nil
}

// Category implements Provider.
func (m *Model) Category(host Ref) Type {
	if h, ok := m.hosts[host]; ok {
		return TypeOf(h.Category)
	}
	return Unknown
}

// Thickness implements Provider.
func (m *Model) Thickness(host Ref) float64 {
	if h, ok := m.hosts[host]; ok {
		return h.Thickness
	}
	return 0
}

// FaceNormal implements Provider.
func (m *Model) FaceNormal(host Ref) geom.Vec {
	if h, ok := m.hosts[host]; ok {
		return h.Normal
	}
	return geom.Zero
}

// Axes implements Provider.
func (m *Model) Axes(opening Ref) (facing, hand geom.Vec) {
	if o, ok := m.openings[opening]; ok {
		return o.Facing, o.Hand
	}
	return geom.Zero, geom.Zero
}

// OpeningDimensions implements Provider.
func (m *Model) OpeningDimensions(opening Ref) (d1, d2 float64) {
	o, ok := m.openings[opening]
	if !ok {
		return 0, 0
	}
	names, ok := DimensionParams[m.Category(o.Host)]
	if !ok {
		return 0, 0
	}
	return o.Parameters[names[0]], o.Parameters[names[1]]
}

// InsertionPoint implements Provider.
func (m *Model) InsertionPoint(opening Ref) geom.Vec {
	if o, ok := m.openings[opening]; ok {
		return o.Point
	}
	return geom.Zero
}

// Covers implements CoverProvider.
func (m *Model) Covers(host Ref) (up, down float64, ok bool) {
	h, found := m.hosts[host]
	if !found || h.CoverUp <= 0 || h.CoverDown <= 0 {
		return 0, 0, false
	}
	return h.CoverUp, h.CoverDown, true
}

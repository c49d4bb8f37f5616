// Package settings persists the framing parameters of a document.
//
// A Record is the flat, user-facing form of framing.Parameters: bar types
// by name, lengths in whole millimetres. Records are stored per document
// title, either as TOML files in a directory or as rows of a sqlite
// database, and fall back to Defaults when a document has none.
package settings

import (
	"sort"
	"strconv"
	"strings"

	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/framing"
)

// Record is the stored settings of one document (mm).
type Record struct {
	LongBar       string `toml:"long_bar"`
	LongAnchorage int    `toml:"long_anchorage"`
	LongCount     int    `toml:"long_count"`
	LongStep      int    `toml:"long_step"`

	TransverseBar       string `toml:"transverse_bar"`
	TransverseAnchorage int    `toml:"transverse_anchorage"`
	TransverseCount     int    `toml:"transverse_count"`
	TransverseStep      int    `toml:"transverse_step"`

	BendBar    string `toml:"bend_bar"`
	BendLength int    `toml:"bend_length"`
	BendStep   int    `toml:"bend_step"`

	BackDiameter   int  `toml:"back_diameter"`
	CoverFromModel bool `toml:"cover_from_model"`
	UpCover        int  `toml:"up_cover"`
	DownCover      int  `toml:"down_cover"`
	Offset         int  `toml:"offset"`
}

// Defaults returns the record used for a document that has none yet.
// Bar types are left unselected.
func Defaults() Record {
	return Record{
		LongAnchorage:       1,
		LongCount:           1,
		LongStep:            1,
		TransverseAnchorage: 1,
		TransverseCount:     1,
		TransverseStep:      1,
		BendLength:          1,
		BendStep:            1,
		BackDiameter:        10,
		CoverFromModel:      true,
		UpCover:             20,
		DownCover:           20,
		Offset:              50,
	}
}

// field binds a TOML key to a Record field.
type field struct {
	name string
	num  func(r *Record) *int
	text func(r *Record) *string
	flag func(r *Record) *bool
}

var fields = []field{
	{name: "long_bar", text: func(r *Record) *string { return &r.LongBar }},
	{name: "long_anchorage", num: func(r *Record) *int { return &r.LongAnchorage }},
	{name: "long_count", num: func(r *Record) *int { return &r.LongCount }},
	{name: "long_step", num: func(r *Record) *int { return &r.LongStep }},
	{name: "transverse_bar", text: func(r *Record) *string { return &r.TransverseBar }},
	{name: "transverse_anchorage", num: func(r *Record) *int { return &r.TransverseAnchorage }},
	{name: "transverse_count", num: func(r *Record) *int { return &r.TransverseCount }},
	{name: "transverse_step", num: func(r *Record) *int { return &r.TransverseStep }},
	{name: "bend_bar", text: func(r *Record) *string { return &r.BendBar }},
	{name: "bend_length", num: func(r *Record) *int { return &r.BendLength }},
	{name: "bend_step", num: func(r *Record) *int { return &r.BendStep }},
	{name: "back_diameter", num: func(r *Record) *int { return &r.BackDiameter }},
	{name: "cover_from_model", flag: func(r *Record) *bool { return &r.CoverFromModel }},
	{name: "up_cover", num: func(r *Record) *int { return &r.UpCover }},
	{name: "down_cover", num: func(r *Record) *int { return &r.DownCover }},
	{name: "offset", num: func(r *Record) *int { return &r.Offset }},
}

func lookupField(key string) (field, bool) {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for _, f := range fields {
		if f.name == key {
			return f, true
		}
	}
	return field{}, false
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.name
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a value given as text to the field named by key.
func (r *Record) Set(key, value string) error {
	f, ok := lookupField(key)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown setting %q", key)
	}
	value = strings.TrimSpace(value)

	switch {
	case f.text != nil:
		*f.text(r) = value
	case f.flag != nil:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "setting %s", f.name)
		}
		*f.flag(r) = b
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "setting %s", f.name)
		}
		*f.num(r) = n
	}
	return nil
}

// Get returns the field named by key formatted as text.
func (r Record) Get(key string) (string, bool) {
	f, ok := lookupField(key)
	if !ok {
		return "", false
	}
	switch {
	case f.text != nil:
		return *f.text(&r), true
	case f.flag != nil:
		return strconv.FormatBool(*f.flag(&r)), true
	default:
		return strconv.Itoa(*f.num(&r)), true
	}
}

// Validate reports a ConfigurationError for the first numeric field that
// is not positive or bar type that is not selected. Covers are checked
// even when taken from the model: they apply to hosts without one.
func (r Record) Validate() error {
	for _, f := range fields {
		switch {
		case f.text != nil:
			if strings.TrimSpace(*f.text(&r)) == "" {
				return errors.Configuration(f.name, "is not selected")
			}
		case f.num != nil:
			if v := *f.num(&r); v <= 0 {
				return errors.Configuration(f.name, "must be positive, got %d", v)
			}
		}
	}
	if !catalog.IsStandardDiameter(r.BackDiameter) {
		return errors.Configuration("back_diameter", "%d is not a standard bar diameter", r.BackDiameter)
	}
	return nil
}

// Parameters resolves the record against the bar types of a document.
func (r Record) Parameters(c catalog.Catalog) (framing.Parameters, error) {
	if err := r.Validate(); err != nil {
		return framing.Parameters{}, err
	}

	resolve := func(name, key string) (catalog.BarType, error) {
		b, ok := c.Lookup(name)
		if !ok {
			return catalog.BarType{}, errors.Configuration(key, "%q is not a bar type of the document", name)
		}
		return b, nil
	}
	long, err := resolve(r.LongBar, "long_bar")
	if err != nil {
		return framing.Parameters{}, err
	}
	transverse, err := resolve(r.TransverseBar, "transverse_bar")
	if err != nil {
		return framing.Parameters{}, err
	}
	bend, err := resolve(r.BendBar, "bend_bar")
	if err != nil {
		return framing.Parameters{}, err
	}

	return framing.Parameters{
		UpCover:             float64(r.UpCover),
		DownCover:           float64(r.DownCover),
		BackDiameter:        float64(r.BackDiameter),
		LongBar:             long,
		LongAnchorage:       float64(r.LongAnchorage),
		LongCount:           r.LongCount,
		LongStep:            float64(r.LongStep),
		TransverseBar:       transverse,
		TransverseAnchorage: float64(r.TransverseAnchorage),
		TransverseCount:     r.TransverseCount,
		TransverseStep:      float64(r.TransverseStep),
		BendBar:             bend,
		BendLength:          float64(r.BendLength),
		BendStep:            float64(r.BendStep),
		Offset:              float64(r.Offset),
	}, nil
}

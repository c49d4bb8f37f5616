// Package host describes the building elements openings are cut through.
//
// A Provider answers the few questions hole framing asks of the host BIM
// document: what category an element is, how thick it is, which way it
// faces, and where an opening sits and how big it is. Model is a Provider
// backed by a JSON model file.
package host

import (
	"strings"

	"github.com/alexiusacademia/holeframe/internal/geom"
)

// Type is the category of a host element
type Type int

const (
	Unknown Type = iota
	Floor
	Wall
)

func (t Type) String() string {
	switch t {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// Ref identifies an element of the host document
type Ref string

// categoryNames maps document category names to host types.
// Localized names are the ones found in Russian-language models.
var categoryNames = map[string]Type{
	"floors":     Floor,
	"перекрытия": Floor,
	"walls":      Wall,
	"стены":      Wall,
}

// TypeOf resolves a document category name. Unrecognized categories are Unknown.
func TypeOf(category string) Type {
	if t, ok := categoryNames[fold(strings.TrimSpace(category))]; ok {
		return t
	}
	return Unknown
}

// Dimension parameter names by host type: the first names the opening's
// length along its orientation, the second its width across it.
var DimensionParams = map[Type][2]string{
	Floor: {"мод_ФОП_Габарит А", "мод_ФОП_Габарит Б"},
	Wall:  {"ФОП_РАЗМ_Ширина", "ФОП_РАЗМ_Высота"},
}

// Provider supplies host element data to frame derivation.
type Provider interface {
	// Host returns the element the opening is cut into.
	Host(opening Ref) (Ref, error)

	// Category returns the host type; Unknown when it is neither floor nor wall.
	Category(host Ref) Type

	// Thickness returns the host thickness (mm).
	Thickness(host Ref) float64

	// FaceNormal returns the wall orientation vector, perpendicular to its face.
	FaceNormal(host Ref) geom.Vec

	// Axes returns the opening's facing and hand directions.
	Axes(opening Ref) (facing, hand geom.Vec)

	// OpeningDimensions returns the raw length and width parameters of the
	// opening. A missing parameter reads as 0.
	OpeningDimensions(opening Ref) (d1, d2 float64)

	// InsertionPoint returns the opening's placement point.
	InsertionPoint(opening Ref) geom.Vec
}

// CoverProvider is implemented by providers that know the concrete cover
// assigned to a host element.
type CoverProvider interface {
	Covers(host Ref) (up, down float64, ok bool)
}

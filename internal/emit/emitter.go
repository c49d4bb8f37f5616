// Package emit materializes bar specs in a host document.
//
// Emitter is the document side of the contract: it creates straight and
// bent bars, moves them, and turns them into linear layout sets. Place
// drives one spec through it; Batch frames a whole selection of openings
// inside a single transaction.
package emit

import (
	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/framing"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// BarID identifies a bar created in a document.
type BarID string

// Emitter creates and positions bars in a host document.
type Emitter interface {
	CreateStraightBar(h host.Ref, seg geom.Segment, bar catalog.BarType, dir geom.Vec) (BarID, error)
	CreateBentBar(h host.Ref, poly geom.Polyline, bar catalog.BarType, dir geom.Vec) (BarID, error)
	Translate(id BarID, v geom.Vec) error
	ApplyLinearLayout(id BarID, count int, spacing float64, symmetric bool) error
}

// Transactor groups emitter calls into one atomic unit of work.
type Transactor interface {
	Begin(name string) error
	Commit() error
	Rollback() error
}

// Target is a document that can both emit bars and run transactions.
type Target interface {
	Emitter
	Transactor
}

// Place creates the bar described by spec in host h, applies its moves in
// order and finally its layout. Failures that carry no code are reported
// as HostOperationError with the emitter's error as cause.
func Place(e Emitter, h host.Ref, spec framing.RebarSpec) (BarID, error) {
	var (
		id  BarID
		err error
	)
	switch spec.Kind {
	case framing.Straight:
		if len(spec.Shape) != 2 {
			return "", errors.Geometry("%s: straight bar needs 2 points, got %d", spec, len(spec.Shape))
		}
		id, err = e.CreateStraightBar(h, geom.Segment{Start: spec.Shape[0], End: spec.Shape[1]}, spec.Bar, spec.Direction)
	case framing.Bent:
		if len(spec.Shape) != 4 {
			return "", errors.Geometry("%s: bent bar needs 4 points, got %d", spec, len(spec.Shape))
		}
		id, err = e.CreateBentBar(h, spec.Shape, spec.Bar, spec.Direction)
	default:
		return "", errors.Geometry("unknown bar kind %d", spec.Kind)
	}
	if err != nil {
		return "", hostError(err, "create %s", spec)
	}

	for i, m := range spec.Moves {
		if err := e.Translate(id, m); err != nil {
			return id, hostError(err, "move %d of %s", i+1, spec)
		}
	}

	if spec.Layout.Replicated() {
		if err := e.ApplyLinearLayout(id, spec.Layout.Count, spec.Layout.Spacing, spec.Layout.Symmetric); err != nil {
			return id, hostError(err, "lay out %s", spec)
		}
	}
	return id, nil
}

func hostError(err error, format string, args ...any) error {
	if errors.CodeOf(err) != "" {
		return err
	}
	return errors.HostOperation(err, format, args...)
}

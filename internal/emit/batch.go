package emit

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/framing"
	"github.com/alexiusacademia/holeframe/internal/hole"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// TransactionName is the name of the transaction a batch runs in.
const TransactionName = "Hole framing"

// Batch frames a selection of openings as one unit of work.
type Batch struct {
	Provider host.Provider
	Params   framing.Parameters

	// CoverFromModel takes the covers of each hole from its host element
	// when the provider knows them. Hosts without covers keep Params'.
	CoverFromModel bool

	// Logger receives per-hole progress; nil uses log.Default().
	Logger *log.Logger
}

// Hole is the outcome of framing one opening.
type Hole struct {
	Frame  *hole.Frame
	Params framing.Parameters
	Specs  []framing.RebarSpec
	Bars   []BarID
}

// BarCount returns the number of physical bars placed around the hole.
func (h Hole) BarCount() int {
	n := 0
	for _, s := range h.Specs {
		n += s.BarCount()
	}
	return n
}

// Result is the outcome of a committed batch.
type Result struct {
	Holes []Hole
}

// BarCount returns the number of physical bars placed by the batch.
func (r *Result) BarCount() int {
	n := 0
	for _, h := range r.Holes {
		n += h.BarCount()
	}
	return n
}

// Plan derives and lays out every opening without touching a document.
// The first failing hole aborts the whole plan.
func (b *Batch) Plan(ctx context.Context, openings []host.Ref) ([]Hole, error) {
	if err := b.Params.Validate(); err != nil {
		return nil, err
	}
	if b.Provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no host provider")
	}
	logger := b.logger()

	frames := make([]*hole.Frame, 0, len(openings))
	for _, ref := range openings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := hole.Derive(b.Provider, ref)
		if err != nil {
			return nil, err
		}
		logger.Debug("derived frame", "opening", ref, "host", f.Host(), "type", f.HostType(),
			"width", f.Width(), "length", f.Length(), "thickness", f.Thickness())
		frames = append(frames, f)
	}

	holes := make([]Hole, 0, len(frames))
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := b.paramsFor(f)
		specs, err := framing.Layout(f, p)
		if err != nil {
			return nil, err
		}
		logger.Debug("laid out", "opening", f.Opening(), "specs", len(specs),
			"up_cover", p.UpCover, "down_cover", p.DownCover)
		holes = append(holes, Hole{Frame: f, Params: p, Specs: specs})
	}
	return holes, nil
}

// Run plans every opening and then emits all bars into t inside one
// transaction. Nothing reaches t when planning fails; any emitter failure
// rolls the transaction back. Uncoded transaction and emitter failures are
// returned as HostOperation errors wrapping the cause.
func (b *Batch) Run(ctx context.Context, t Target, openings []host.Ref) (*Result, error) {
	holes, err := b.Plan(ctx, openings)
	if err != nil {
		return nil, err
	}
	logger := b.logger()

	if err := t.Begin(TransactionName); err != nil {
		return nil, hostError(err, "begin %s", TransactionName)
	}
	if err := b.emit(ctx, t, holes); err != nil {
		if rbErr := t.Rollback(); rbErr != nil {
			logger.Error("rollback failed", "err", rbErr)
		}
		return nil, err
	}
	if err := t.Commit(); err != nil {
		if rbErr := t.Rollback(); rbErr != nil {
			logger.Error("rollback failed", "err", rbErr)
		}
		return nil, hostError(err, "commit %s", TransactionName)
	}

	res := &Result{Holes: holes}
	logger.Info(fmt.Sprintf("framed %d openings", len(holes)), "bars", res.BarCount())
	return res, nil
}

func (b *Batch) emit(ctx context.Context, e Emitter, holes []Hole) error {
	for i := range holes {
		if err := ctx.Err(); err != nil {
			return err
		}
		h := &holes[i]
		h.Bars = make([]BarID, 0, len(h.Specs))
		for _, s := range h.Specs {
			id, err := Place(e, h.Frame.Host(), s)
			if err != nil {
				return err
			}
			h.Bars = append(h.Bars, id)
		}
	}
	return nil
}

func (b *Batch) paramsFor(f *hole.Frame) framing.Parameters {
	if !b.CoverFromModel {
		return b.Params
	}
	cp, ok := b.Provider.(host.CoverProvider)
	if !ok {
		return b.Params
	}
	up, down, ok := cp.Covers(f.Host())
	if !ok {
		b.logger().Warn("host has no cover, using configured covers", "host", f.Host(),
			"up_cover", b.Params.UpCover, "down_cover", b.Params.DownCover)
		return b.Params
	}
	return b.Params.WithCovers(up, down)
}

func (b *Batch) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

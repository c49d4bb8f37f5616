package emit

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/alexiusacademia/holeframe/internal/catalog"
	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/framing"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/host"
)

// Bar is a bar element stored in a Document.
type Bar struct {
	ID        BarID
	Host      host.Ref
	Kind      framing.Kind
	Type      catalog.BarType
	Points    geom.Polyline
	Direction geom.Vec
	Layout    framing.LinearLayout
	Seq       int // creation order
}

// Instances returns the positioned polyline of every bar in the set.
func (b Bar) Instances() []geom.Polyline {
	return framing.RebarSpec{
		Shape:     b.Points,
		Direction: b.Direction,
		Layout:    b.Layout,
	}.Instances()
}

// Document is an in-memory host document. Changes are only accepted inside
// a transaction; Rollback discards everything since Begin.
//
// A Document is safe for concurrent use.
type Document struct {
	// Fail, when set, is called before every emitter operation with the
	// operation name. A non-nil result fails that operation.
	Fail func(op string) error

	mu      sync.Mutex
	bars    map[BarID]*Bar
	pending map[BarID]*Bar
	txName  string
	inTx    bool
	seq     int
	commits []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{bars: make(map[BarID]*Bar)}
}

// Begin opens a transaction. Transactions do not nest.
func (d *Document) Begin(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inTx {
		return errors.New(errors.ErrCodeHostOperation, "transaction %q already open", d.txName)
	}
	d.inTx = true
	d.txName = name
	d.pending = make(map[BarID]*Bar)
	for id, b := range d.bars {
		c := *b
		c.Points = append(geom.Polyline(nil), b.Points...)
		d.pending[id] = &c
	}
	return nil
}

// Commit makes the changes of the open transaction permanent.
func (d *Document) Commit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inTx {
		return errors.New(errors.ErrCodeHostOperation, "commit without transaction")
	}
	if err := d.fail("commit"); err != nil {
		return err
	}
	d.bars = d.pending
	d.commits = append(d.commits, d.txName)
	d.close()
	return nil
}

// Rollback discards the changes of the open transaction.
func (d *Document) Rollback() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inTx {
		return errors.New(errors.ErrCodeHostOperation, "rollback without transaction")
	}
	d.close()
	return nil
}

func (d *Document) close() {
	d.pending = nil
	d.txName = ""
	d.inTx = false
}

// CreateStraightBar implements Emitter.
func (d *Document) CreateStraightBar(h host.Ref, seg geom.Segment, bar catalog.BarType, dir geom.Vec) (BarID, error) {
	if seg.IsDegenerate() {
		return "", errors.New(errors.ErrCodeHostOperation, "straight bar of zero length")
	}
	return d.create("create straight bar", h, framing.Straight, seg.Polyline(), bar, dir)
}

// CreateBentBar implements Emitter.
func (d *Document) CreateBentBar(h host.Ref, poly geom.Polyline, bar catalog.BarType, dir geom.Vec) (BarID, error) {
	if len(poly) < 3 {
		return "", errors.New(errors.ErrCodeHostOperation, "bent bar needs at least 3 points, got %d", len(poly))
	}
	return d.create("create bent bar", h, framing.Bent, poly, bar, dir)
}

func (d *Document) create(op string, h host.Ref, kind framing.Kind, pts geom.Polyline, bar catalog.BarType, dir geom.Vec) (BarID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writable(op); err != nil {
		return "", err
	}
	if h == "" {
		return "", errors.New(errors.ErrCodeHostOperation, "%s: no host", op)
	}
	if !bar.Valid() {
		return "", errors.New(errors.ErrCodeHostOperation, "%s: bar type %q is not available", op, bar.Name)
	}
	unit, ok := geom.Unit(dir)
	if !ok {
		return "", errors.New(errors.ErrCodeHostOperation, "%s: zero direction", op)
	}

	d.seq++
	b := &Bar{
		ID:        BarID(uuid.NewString()),
		Host:      h,
		Kind:      kind,
		Type:      bar,
		Points:    append(geom.Polyline(nil), pts...),
		Direction: unit,
		Layout:    framing.Single,
		Seq:       d.seq,
	}
	d.pending[b.ID] = b
	return b.ID, nil
}

// Translate implements Emitter.
func (d *Document) Translate(id BarID, v geom.Vec) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writable("translate"); err != nil {
		return err
	}
	b, ok := d.pending[id]
	if !ok {
		return errors.New(errors.ErrCodeHostOperation, "translate: no bar %s", id)
	}
	b.Points = b.Points.Translated(v)
	return nil
}

// ApplyLinearLayout implements Emitter.
func (d *Document) ApplyLinearLayout(id BarID, count int, spacing float64, symmetric bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writable("layout"); err != nil {
		return err
	}
	b, ok := d.pending[id]
	if !ok {
		return errors.New(errors.ErrCodeHostOperation, "layout: no bar %s", id)
	}
	if count < 1 || (count > 1 && !(spacing > 0)) {
		return errors.New(errors.ErrCodeHostOperation, "layout: invalid count %d / spacing %g", count, spacing)
	}
	b.Layout = framing.LinearLayout{Count: count, Spacing: spacing, Symmetric: symmetric}
	return nil
}

func (d *Document) writable(op string) error {
	if !d.inTx {
		return errors.New(errors.ErrCodeHostOperation, "%s outside a transaction", op)
	}
	return d.fail(op)
}

func (d *Document) fail(op string) error {
	if d.Fail == nil {
		return nil
	}
	if err := d.Fail(op); err != nil {
		return errors.HostOperation(err, "%s", op)
	}
	return nil
}

// Bars returns the committed bars in creation order.
func (d *Document) Bars() []Bar {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Bar, 0, len(d.bars))
	for _, b := range d.bars {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Bar returns a committed bar.
func (d *Document) Bar(id BarID) (Bar, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.bars[id]
	if !ok {
		return Bar{}, false
	}
	return *b, true
}

// BarCount returns the number of physical bars committed, counting every
// member of a layout set.
func (d *Document) BarCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	for _, b := range d.bars {
		n += max(1, b.Layout.Count)
	}
	return n
}

// Commits returns the names of the committed transactions.
func (d *Document) Commits() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.commits...)
}

func (b Bar) String() string {
	return fmt.Sprintf("%s %s %s x%d", b.ID, b.Kind, b.Type, max(1, b.Layout.Count))
}

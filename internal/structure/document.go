package structure

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	etree "github.com/Konstantin8105/errors"
	"github.com/go-playground/validator/v10"

	"github.com/alexiusacademia/gostatics/internal/element"
)

// DocumentVersion is the persisted format revision
const DocumentVersion = 1

// ErrMalformedState is returned when a persisted structure is incomplete or
// inconsistent. Nothing is reconstructed in that case.
var ErrMalformedState = errors.New("malformed persisted state")

var validate = validator.New()

// Document is the persisted form of a structure. Points are stored by
// value under every linkage and connection that references them and are
// re-joined by id on decode.
type Document struct {
	Version     int              `json:"version" yaml:"version" validate:"eq=1"`
	Counters    element.Counters `json:"counters" yaml:"counters"`
	Linkages    []LinkageDoc     `json:"linkages" yaml:"linkages" validate:"dive"`
	Connections []ConnectionDoc  `json:"connections" yaml:"connections" validate:"dive"`
}

// VariableDoc is a persisted variable. Checkpoint holds the pre-solve
// state of a solved reaction so that clearing the solution still works
// after a reload.
type VariableDoc struct {
	Symbol     string    `json:"symbol" yaml:"symbol" validate:"required,excludesall=+*"`
	Known      bool      `json:"known" yaml:"known"`
	Value      float64   `json:"value" yaml:"value"`
	Checkpoint *StateDoc `json:"checkpoint,omitempty" yaml:"checkpoint,omitempty"`
}

// StateDoc is a persisted variable snapshot
type StateDoc struct {
	Known bool    `json:"known" yaml:"known"`
	Value float64 `json:"value" yaml:"value"`
}

// LoadDoc is a persisted force or moment
type LoadDoc struct {
	ID   int          `json:"id" yaml:"id" validate:"gt=0"`
	Name string       `json:"name" yaml:"name" validate:"required"`
	Kind string       `json:"kind" yaml:"kind" validate:"oneof=force moment"`
	Case string       `json:"case,omitempty" yaml:"case,omitempty" validate:"omitempty,oneof=D L Lr W E R"`
	Fx   *VariableDoc `json:"fx,omitempty" yaml:"fx,omitempty"`
	Fy   *VariableDoc `json:"fy,omitempty" yaml:"fy,omitempty"`
	Mz   *VariableDoc `json:"mz,omitempty" yaml:"mz,omitempty"`
}

// PointDoc is a persisted point
type PointDoc struct {
	ID    int         `json:"id" yaml:"id" validate:"gt=0"`
	Name  string      `json:"name" yaml:"name" validate:"required"`
	X     float64     `json:"x" yaml:"x"`
	Y     float64     `json:"y" yaml:"y"`
	Fx    VariableDoc `json:"fx" yaml:"fx"`
	Fy    VariableDoc `json:"fy" yaml:"fy"`
	Mz    VariableDoc `json:"mz" yaml:"mz"`
	Loads []LoadDoc   `json:"loads,omitempty" yaml:"loads,omitempty" validate:"dive"`
}

// LinkageDoc is a persisted linkage
type LinkageDoc struct {
	ID     int        `json:"id" yaml:"id" validate:"gt=0"`
	Name   string     `json:"name" yaml:"name" validate:"required"`
	Points []PointDoc `json:"points" yaml:"points" validate:"min=2,dive"`
}

// ConnectionDoc is a persisted connection
type ConnectionDoc struct {
	ID     int          `json:"id" yaml:"id" validate:"gt=0"`
	Name   string       `json:"name" yaml:"name" validate:"required"`
	Kind   string       `json:"kind" yaml:"kind" validate:"oneof=fixed pin pinjoint hroller vroller free"`
	Points []PointDoc   `json:"points" yaml:"points" validate:"min=1,dive"`
	Loads  []LoadDoc    `json:"loads,omitempty" yaml:"loads,omitempty" validate:"dive"`
	Ground *VariableDoc `json:"ground,omitempty" yaml:"ground,omitempty"`
}

// Encode converts a structure into its persisted form
func Encode(s *Structure) *Document {
	doc := &Document{
		Version:  DocumentVersion,
		Counters: s.arena.Counters(),
	}
	for _, l := range s.linkages {
		doc.Linkages = append(doc.Linkages, LinkageDoc{
			ID:     l.ID,
			Name:   l.Name,
			Points: encodePoints(l.Points()),
		})
	}
	for _, c := range s.connections {
		cd := ConnectionDoc{
			ID:     c.ID,
			Name:   c.Name,
			Kind:   c.Kind().String(),
			Points: encodePoints(c.Points()),
			Loads:  encodeLoads(c.Loads()),
		}
		if g := c.GroundReaction(); g != nil {
			cd.Ground = encodeVariable(g)
			if cp, ok := c.GroundCheckpoint(); ok {
				cd.Ground.Checkpoint = encodeState(cp)
			}
		}
		doc.Connections = append(doc.Connections, cd)
	}
	return doc
}

func encodeVariable(v *element.Variable) *VariableDoc {
	d := &VariableDoc{Symbol: v.Symbol, Known: v.Known()}
	if val, err := v.Value(); err == nil {
		d.Value = val
	}
	return d
}

func encodeState(s element.State) *StateDoc {
	return &StateDoc{Known: s.Known, Value: s.Value}
}

func encodeLoads(loads []*element.Load) []LoadDoc {
	var docs []LoadDoc
	for _, l := range loads {
		d := LoadDoc{ID: l.ID, Name: l.Name, Kind: l.Kind.String(), Case: l.Case}
		if l.Fx != nil {
			d.Fx = encodeVariable(l.Fx)
		}
		if l.Fy != nil {
			d.Fy = encodeVariable(l.Fy)
		}
		if l.Mz != nil {
			d.Mz = encodeVariable(l.Mz)
		}
		docs = append(docs, d)
	}
	return docs
}

func encodePoints(points []*element.Point) []PointDoc {
	docs := make([]PointDoc, 0, len(points))
	for _, p := range points {
		pd := PointDoc{
			ID:    p.ID,
			Name:  p.Name,
			X:     p.X,
			Y:     p.Y,
			Fx:    *encodeVariable(p.Fx),
			Fy:    *encodeVariable(p.Fy),
			Mz:    *encodeVariable(p.Mz),
			Loads: encodeLoads(p.Loads()),
		}
		if cp, ok := p.CheckpointState(); ok {
			pd.Fx.Checkpoint = encodeState(cp[0])
			pd.Fy.Checkpoint = encodeState(cp[1])
			pd.Mz.Checkpoint = encodeState(cp[2])
		}
		docs = append(docs, pd)
	}
	return docs
}

// Decode rebuilds a structure from its persisted form. Every point id maps
// to exactly one *element.Point, however many elements reference it.
func Decode(doc *Document) (*Structure, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedState)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, formatValidationError(err))
	}

	d := &decoder{
		st:      New(),
		points:  make(map[int]*element.Point),
		ids:     make(map[int]string),
		names:   make(map[string]int),
		symbols: make(map[string]string),
		et:      etree.New("structure document"),
	}

	for _, ld := range doc.Linkages {
		d.claim(ld.ID, "linkage "+ld.Name)
		points := d.pointList(ld.Points)
		d.st.linkages = append(d.st.linkages, element.RestoreLinkage(ld.ID, ld.Name, points))
	}
	for _, cd := range doc.Connections {
		d.claim(cd.ID, "connection "+cd.Name)
		kind, err := element.ParseKind(cd.Kind)
		if err != nil {
			d.et.Add(err)
			continue
		}
		points := d.pointList(cd.Points)
		loads := d.loads(cd.Loads)
		var ground *element.Variable
		if cd.Ground != nil {
			d.symbol(cd.Ground.Symbol, "", "connection "+cd.Name)
			ground = decodeVariable(*cd.Ground)
		}
		c := element.RestoreConnection(cd.ID, cd.Name, kind, points, loads, ground)
		if cd.Ground != nil && cd.Ground.Checkpoint != nil {
			c.SetGroundCheckpoint(decodeState(*cd.Ground.Checkpoint))
		}
		d.st.connections = append(d.st.connections, c)
	}

	if d.et.IsError() {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, d.et)
	}

	for _, p := range d.points {
		d.st.arena.Register(p)
	}
	for id := range d.ids {
		d.st.arena.Reserve(id)
	}
	d.st.arena.Restore(doc.Counters)
	return d.st, nil
}

type decoder struct {
	st      *Structure
	points  map[int]*element.Point
	ids     map[int]string
	names   map[string]int    // point name -> id
	symbols map[string]string // variable symbol -> owner
	et      *etree.Tree
}

// claim records a non-point element id; ids are unique across all
// element types.
func (d *decoder) claim(id int, what string) {
	if prev, ok := d.ids[id]; ok {
		d.et.Add(fmt.Errorf("id %d used by both %s and %s", id, prev, what))
		return
	}
	if p, ok := d.points[id]; ok {
		d.et.Add(fmt.Errorf("id %d used by both point %s and %s", id, p.Name, what))
		return
	}
	d.ids[id] = what
}

// symbol checks that a variable symbol fits the equation grammar, matches
// the name derived from its owner (when want is set) and is not used by any
// other variable.
func (d *decoder) symbol(sym, want, owner string) {
	if want != "" && sym != want {
		d.et.Add(fmt.Errorf("%s: symbol %q, expected %q", owner, sym, want))
	}
	if strings.ContainsAny(sym, "+*") || strings.IndexFunc(sym, unicode.IsSpace) >= 0 {
		d.et.Add(fmt.Errorf("%s: symbol %q must not contain '+', '*' or spaces", owner, sym))
	}
	if prev, ok := d.symbols[sym]; ok {
		d.et.Add(fmt.Errorf("symbol %q used by both %s and %s", sym, prev, owner))
		return
	}
	d.symbols[sym] = owner
}

func (d *decoder) pointList(docs []PointDoc) []*element.Point {
	points := make([]*element.Point, 0, len(docs))
	for _, pd := range docs {
		if p, ok := d.points[pd.ID]; ok {
			if p.Name != pd.Name || p.X != pd.X || p.Y != pd.Y {
				d.et.Add(fmt.Errorf("point id %d stored with conflicting data (%s at %g,%g vs %s at %g,%g)",
					pd.ID, p.Name, p.X, p.Y, pd.Name, pd.X, pd.Y))
			}
			points = append(points, p)
			continue
		}
		if what, ok := d.ids[pd.ID]; ok {
			d.et.Add(fmt.Errorf("point id %d collides with %s", pd.ID, what))
		}
		if other, ok := d.names[pd.Name]; ok {
			d.et.Add(fmt.Errorf("point name %s used by ids %d and %d", pd.Name, other, pd.ID))
		}
		d.names[pd.Name] = pd.ID

		owner := "point " + pd.Name
		d.symbol(pd.Fx.Symbol, "F_"+pd.Name+"x", owner)
		d.symbol(pd.Fy.Symbol, "F_"+pd.Name+"y", owner)
		d.symbol(pd.Mz.Symbol, "M_"+pd.Name+"z", owner)

		p := element.RestorePoint(pd.ID, pd.Name, pd.X, pd.Y,
			decodeVariable(pd.Fx), decodeVariable(pd.Fy), decodeVariable(pd.Mz),
			d.loads(pd.Loads))
		if cp, ok := d.checkpoint(pd); ok {
			p.SetCheckpoint(cp)
		}
		d.points[pd.ID] = p
		points = append(points, p)
	}
	return points
}

// checkpoint reads a point snapshot, which is all three reactions or none.
func (d *decoder) checkpoint(pd PointDoc) ([3]element.State, bool) {
	docs := []*StateDoc{pd.Fx.Checkpoint, pd.Fy.Checkpoint, pd.Mz.Checkpoint}
	var cp [3]element.State
	n := 0
	for i, sd := range docs {
		if sd != nil {
			cp[i] = decodeState(*sd)
			n++
		}
	}
	switch n {
	case 0:
		return cp, false
	case len(docs):
		return cp, true
	}
	d.et.Add(fmt.Errorf("point %s: checkpoint must cover fx, fy and mz", pd.Name))
	return cp, false
}

func (d *decoder) loads(docs []LoadDoc) []*element.Load {
	var loads []*element.Load
	for _, ld := range docs {
		d.claim(ld.ID, "load "+ld.Name)
		kind, _ := element.ParseLoadKind(ld.Kind)
		switch {
		case kind == element.Force && (ld.Fx == nil || ld.Fy == nil):
			d.et.Add(fmt.Errorf("force %s needs fx and fy", ld.Name))
			continue
		case kind == element.Moment && ld.Mz == nil:
			d.et.Add(fmt.Errorf("moment %s needs mz", ld.Name))
			continue
		}
		owner := "load " + ld.Name
		var fx, fy, mz *element.Variable
		if kind == element.Force {
			d.symbol(ld.Fx.Symbol, ld.Name+"_x", owner)
			d.symbol(ld.Fy.Symbol, ld.Name+"_y", owner)
			fx, fy = decodeVariable(*ld.Fx), decodeVariable(*ld.Fy)
		} else {
			d.symbol(ld.Mz.Symbol, ld.Name+"_z", owner)
			mz = decodeVariable(*ld.Mz)
		}
		l := element.RestoreLoad(ld.ID, ld.Name, kind, fx, fy, mz)
		l.Case = ld.Case
		loads = append(loads, l)
	}
	return loads
}

func decodeVariable(d VariableDoc) *element.Variable {
	if d.Known {
		return element.NewKnown(d.Symbol, d.Value)
	}
	return element.NewUnknown(d.Symbol)
}

func decodeState(s StateDoc) element.State {
	return element.State{Known: s.Known, Value: s.Value}
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must have at least %s entries", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "excludesall":
			msgs = append(msgs, fmt.Sprintf("%s must not contain any of %q", field, e.Param()))
		case "eq":
			msgs = append(msgs, fmt.Sprintf("%s must be %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

package element

import "github.com/alexiusacademia/gostatics/internal/equation"

// Point is a 2D location owning three reaction variables and the loads
// applied at it. Identity is the ID; the same *Point may be referenced by
// several linkages and connections.
type Point struct {
	ID   int
	Name string
	X    float64
	Y    float64

	Fx *Variable
	Fy *Variable
	Mz *Variable

	loads []*Load

	checkpoint *[3]State
}

func newPoint(id int, name string, x, y float64) *Point {
	return &Point{
		ID:   id,
		Name: name,
		X:    x,
		Y:    y,
		Fx:   NewUnknown("F_" + name + "x"),
		Fy:   NewUnknown("F_" + name + "y"),
		Mz:   NewUnknown("M_" + name + "z"),
	}
}

// RestorePoint rebuilds a point from persisted state without applying any
// load or boundary-condition side effects.
func RestorePoint(id int, name string, x, y float64, fx, fy, mz *Variable, loads []*Load) *Point {
	return &Point{ID: id, Name: name, X: x, Y: y, Fx: fx, Fy: fy, Mz: mz, loads: loads}
}

// SetPosition relocates the point
func (p *Point) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
}

// Loads returns the loads applied at the point in attachment order
func (p *Point) Loads() []*Load {
	return append([]*Load(nil), p.loads...)
}

// AddLoad attaches a load. A loaded point carries no unknown reaction, so
// all three reactions become known zeros.
func (p *Point) AddLoad(l *Load) {
	p.loads = append(p.loads, l)
	p.checkpoint = nil
	p.zeroReactions()
}

// RemoveLoad detaches a load. When the last load goes, the reactions
// become unknown again.
func (p *Point) RemoveLoad(l *Load) bool {
	var ok bool
	p.loads, ok = removeLoad(p.loads, l)
	if ok && len(p.loads) == 0 {
		p.checkpoint = nil
		p.ResetReactions()
	}
	return ok
}

// TakeLoads detaches and returns every load so that ownership can move to
// another element.
func (p *Point) TakeLoads() []*Load {
	loads := p.loads
	p.loads = nil
	if len(loads) > 0 {
		p.checkpoint = nil
		p.ResetReactions()
	}
	return loads
}

// ResetReactions reverts the point to three free unknowns
func (p *Point) ResetReactions() {
	p.Fx.Clear()
	p.Fy.Clear()
	p.Mz.Clear()
}

func (p *Point) zeroReactions() {
	p.Fx.Set(0)
	p.Fy.Set(0)
	p.Mz.Set(0)
}

// Reactions returns Fx, Fy, Mz
func (p *Point) Reactions() []*Variable {
	return []*Variable{p.Fx, p.Fy, p.Mz}
}

// TermsFx returns the reaction Fx term followed by every load's Fx.
func (p *Point) TermsFx() equation.Equation {
	return append(equation.Equation{p.Fx.Term()}, componentTerms(p.loads, loadFx)...)
}

// TermsFy returns the reaction Fy term followed by every load's Fy.
func (p *Point) TermsFy() equation.Equation {
	return append(equation.Equation{p.Fy.Term()}, componentTerms(p.loads, loadFy)...)
}

// TermsMz returns the reaction moment term only
func (p *Point) TermsMz() equation.Equation {
	return equation.Equation{p.Mz.Term()}
}

// AppliedMoments returns the terms of moment loads applied at the point.
func (p *Point) AppliedMoments() equation.Equation {
	return componentTerms(p.loads, loadMz)
}

// SymbolFx is the text form of TermsFx
func (p *Point) SymbolFx() string {
	return p.TermsFx().String()
}

// SymbolFy is the text form of TermsFy
func (p *Point) SymbolFy() string {
	return p.TermsFy().String()
}

// SymbolMz is the text form of TermsMz
func (p *Point) SymbolMz() string {
	return p.TermsMz().String()
}

// Checkpoint records the reaction state so Restore can undo a later solve
// write-back. An existing checkpoint is kept.
func (p *Point) Checkpoint() {
	if p.checkpoint != nil {
		return
	}
	p.checkpoint = &[3]State{p.Fx.save(), p.Fy.save(), p.Mz.save()}
}

// HasCheckpoint reports whether a solve snapshot is held
func (p *Point) HasCheckpoint() bool {
	return p.checkpoint != nil
}

// CheckpointState returns the held Fx, Fy, Mz snapshot
func (p *Point) CheckpointState() ([3]State, bool) {
	if p.checkpoint == nil {
		return [3]State{}, false
	}
	return *p.checkpoint, true
}

// SetCheckpoint installs a snapshot read back from persisted state
func (p *Point) SetCheckpoint(s [3]State) {
	p.checkpoint = &s
}

// Restore returns the reactions to the checkpointed state and drops it.
func (p *Point) Restore() {
	if p.checkpoint == nil {
		return
	}
	p.Fx.restore(p.checkpoint[0])
	p.Fy.restore(p.checkpoint[1])
	p.Mz.restore(p.checkpoint[2])
	p.checkpoint = nil
}

// release drops any boundary condition a connection placed on the point,
// along with a checkpoint taken under that condition. A loaded point keeps
// its known zero reactions.
func (p *Point) release() {
	p.checkpoint = nil
	if len(p.loads) > 0 {
		p.zeroReactions()
		return
	}
	p.ResetReactions()
}

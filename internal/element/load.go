package element

import "github.com/alexiusacademia/gostatics/internal/equation"

// LoadKind distinguishes applied forces from applied moments
type LoadKind int

const (
	Force LoadKind = iota
	Moment
)

// String returns the persisted name of the kind
func (k LoadKind) String() string {
	if k == Moment {
		return "moment"
	}
	return "force"
}

// ParseLoadKind is the inverse of LoadKind.String
func ParseLoadKind(s string) (LoadKind, bool) {
	switch s {
	case "force":
		return Force, true
	case "moment":
		return Moment, true
	}
	return Force, false
}

// Load is a user-applied force (Fx, Fy) or moment (Mz). Components that do
// not apply to the kind are nil. A load belongs to exactly one Point or
// Connection at a time.
type Load struct {
	ID   int
	Name string
	Kind LoadKind

	// Case is the load case label used by factored combinations (D, L, Lr,
	// W, E, R). Empty means dead load.
	Case string

	Fx *Variable
	Fy *Variable
	Mz *Variable
}

func newForce(id int, name string, fx, fy float64) *Load {
	return &Load{
		ID:   id,
		Name: name,
		Kind: Force,
		Fx:   NewKnown(name+"_x", fx),
		Fy:   NewKnown(name+"_y", fy),
	}
}

func newMoment(id int, name string, mz float64) *Load {
	return &Load{
		ID:   id,
		Name: name,
		Kind: Moment,
		Mz:   NewKnown(name+"_z", mz),
	}
}

// RestoreLoad rebuilds a load from persisted components.
func RestoreLoad(id int, name string, kind LoadKind, fx, fy, mz *Variable) *Load {
	return &Load{ID: id, Name: name, Kind: kind, Fx: fx, Fy: fy, Mz: mz}
}

// Variables returns the non-nil components
func (l *Load) Variables() []*Variable {
	var vars []*Variable
	for _, v := range []*Variable{l.Fx, l.Fy, l.Mz} {
		if v != nil {
			vars = append(vars, v)
		}
	}
	return vars
}

func componentTerms(loads []*Load, pick func(*Load) *Variable) equation.Equation {
	var eq equation.Equation
	for _, l := range loads {
		if v := pick(l); v != nil {
			eq = append(eq, v.Term())
		}
	}
	return eq
}

func loadFx(l *Load) *Variable { return l.Fx }
func loadFy(l *Load) *Variable { return l.Fy }
func loadMz(l *Load) *Variable { return l.Mz }

func removeLoad(loads []*Load, l *Load) ([]*Load, bool) {
	for i, x := range loads {
		if x == l {
			return append(loads[:i], loads[i+1:]...), true
		}
	}
	return loads, false
}

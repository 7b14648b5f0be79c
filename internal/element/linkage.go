package element

import "github.com/alexiusacademia/gostatics/internal/equation"

// Linkage is a rigid body spanning two or more points. The first point is
// the reference for the moment equation.
type Linkage struct {
	ID   int
	Name string

	points []*Point
}

func newLinkage(id int, name string, points []*Point) *Linkage {
	l := &Linkage{ID: id, Name: name}
	for _, p := range points {
		l.AddPoint(p)
	}
	return l
}

// RestoreLinkage rebuilds a linkage from persisted points
func RestoreLinkage(id int, name string, points []*Point) *Linkage {
	return &Linkage{ID: id, Name: name, points: points}
}

// Points returns the member points in order
func (l *Linkage) Points() []*Point {
	return append([]*Point(nil), l.points...)
}

// Reference returns the moment reference point, nil when empty.
func (l *Linkage) Reference() *Point {
	if len(l.points) == 0 {
		return nil
	}
	return l.points[0]
}

// AddPoint appends p unless it is already a member
func (l *Linkage) AddPoint(p *Point) {
	for _, x := range l.points {
		if x == p {
			return
		}
	}
	l.points = append(l.points, p)
}

// RemovePoint drops p from the linkage
func (l *Linkage) RemovePoint(p *Point) bool {
	for i, x := range l.points {
		if x == p {
			l.points = append(l.points[:i], l.points[i+1:]...)
			return true
		}
	}
	return false
}

// Degenerate reports whether fewer than two points remain; the owner must
// then delete the linkage.
func (l *Linkage) Degenerate() bool {
	return len(l.points) < 2
}

// Equilibrium returns ΣFx, ΣFy and ΣMz about the reference point.
//
// Each point contributes Δx·Fy − Δy·Fx plus its reaction moment and any
// applied moments, with Δ measured from the reference point.
func (l *Linkage) Equilibrium() []equation.Equation {
	var fx, fy, mz equation.Equation
	ref := l.Reference()
	for _, p := range l.points {
		fx = append(fx, p.TermsFx()...)
		fy = append(fy, p.TermsFy()...)

		dx := p.X - ref.X
		dy := p.Y - ref.Y
		if dx != 0 {
			mz = append(mz, p.TermsFy().Scale(dx)...)
		}
		if dy != 0 {
			mz = append(mz, p.TermsFx().Scale(-dy)...)
		}
		mz = append(mz, p.TermsMz()...)
		mz = append(mz, p.AppliedMoments()...)
	}
	return []equation.Equation{fx, fy, mz}
}

// GenerateEquilibrium returns the text form of Equilibrium
func (l *Linkage) GenerateEquilibrium() []string {
	return equation.Strings(l.Equilibrium())
}

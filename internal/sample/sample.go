// Package sample builds reference structures used by the example command
// and by tests.
package sample

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

// SimplySupportedBeam is a 100-unit beam with a pin at P1(0,0), a
// horizontal roller at P2(100,0) and a downward force of 100 at the
// midpoint P3(50,0).
func SimplySupportedBeam() *structure.Structure {
	st := structure.New()
	a := st.Arena()

	p1 := a.NewPoint(0, 0)
	p2 := a.NewPoint(100, 0)
	p3 := a.NewPoint(50, 0)
	p3.AddLoad(a.NewForce(0, -100))

	st.AddLinkage(a.NewLinkage(p1, p3, p2))
	st.AddConnection(a.NewConnection(element.Pin, p1))
	st.AddConnection(a.NewConnection(element.HorizontalRoller, p2))
	return st
}

// Cantilever is a 200-unit beam fixed at P1(0,0) with a downward force of
// 10 at the free end P2(200,0).
func Cantilever() *structure.Structure {
	st := structure.New()
	a := st.Arena()

	p1 := a.NewPoint(0, 0)
	p2 := a.NewPoint(200, 0)
	p2.AddLoad(a.NewForce(0, -10))

	st.AddLinkage(a.NewLinkage(p1, p2))
	st.AddConnection(a.NewConnection(element.Fixed, p1))
	return st
}

// ThreeHingedArch joins two inclined members with a pin joint at the crown
// (50,50). Supports are pins at P1(0,0) and P5(100,0); a downward force of
// 100 acts at P2(25,25) on the left member.
func ThreeHingedArch() *structure.Structure {
	st := structure.New()
	a := st.Arena()

	left := a.NewPoint(0, 0)
	load := a.NewPoint(25, 25)
	crownL := a.NewPoint(50, 50)
	crownR := a.NewPoint(50, 50)
	right := a.NewPoint(100, 0)
	load.AddLoad(a.NewForce(0, -100))

	st.AddLinkage(a.NewLinkage(left, load, crownL))
	st.AddLinkage(a.NewLinkage(crownR, right))
	st.AddConnection(a.NewConnection(element.Pin, left))
	st.AddConnection(a.NewConnection(element.Pin, right))
	st.AddConnection(a.NewConnection(element.PinJoint, crownL, crownR))
	return st
}

var builders = map[string]func() *structure.Structure{
	"beam":       SimplySupportedBeam,
	"cantilever": Cantilever,
	"arch":       ThreeHingedArch,
}

// Names lists the available samples
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build returns the named sample
func Build(name string) (*structure.Structure, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample %q (available: %v)", name, Names())
	}
	return b(), nil
}

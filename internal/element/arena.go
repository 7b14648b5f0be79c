package element

import "fmt"

// Name prefixes handed out by the arena
const (
	PointPrefix      = "P"
	LinkagePrefix    = "L"
	ConnectionPrefix = "C"
	ForcePrefix      = "F"
	MomentPrefix     = "M"
)

// Counters is the persisted allocator state
type Counters struct {
	NextID int            `json:"next_id" yaml:"next_id"`
	Names  map[string]int `json:"names" yaml:"names"`
}

// Arena allocates ids and names for the elements of one structure and
// keeps every point it created addressable by id. Ids come from a single
// sequence and are never reused.
type Arena struct {
	nextID int
	names  map[string]int
	points map[int]*Point
}

// NewArena returns an empty allocator
func NewArena() *Arena {
	return &Arena{
		nextID: 1,
		names:  make(map[string]int),
		points: make(map[int]*Point),
	}
}

func (a *Arena) allocate(prefix string) (int, string) {
	id := a.nextID
	a.nextID++
	a.names[prefix]++
	return id, fmt.Sprintf("%s%d", prefix, a.names[prefix])
}

// NewPoint creates and registers a point at (x, y)
func (a *Arena) NewPoint(x, y float64) *Point {
	id, name := a.allocate(PointPrefix)
	p := newPoint(id, name, x, y)
	a.points[id] = p
	return p
}

// NewLinkage creates a rigid body over the given points
func (a *Arena) NewLinkage(points ...*Point) *Linkage {
	id, name := a.allocate(LinkagePrefix)
	return newLinkage(id, name, points)
}

// NewConnection creates a support or joint of the given kind over points.
// Loads on the points move to the connection.
func (a *Arena) NewConnection(kind Kind, points ...*Point) *Connection {
	id, name := a.allocate(ConnectionPrefix)
	return newConnection(id, name, kind, points)
}

// NewForce creates a force load with components (fx, fy)
func (a *Arena) NewForce(fx, fy float64) *Load {
	id, name := a.allocate(ForcePrefix)
	return newForce(id, name, fx, fy)
}

// NewMoment creates a moment load
func (a *Arena) NewMoment(mz float64) *Load {
	id, name := a.allocate(MomentPrefix)
	return newMoment(id, name, mz)
}

// Point looks up a registered point by id
func (a *Arena) Point(id int) (*Point, bool) {
	p, ok := a.points[id]
	return p, ok
}

// Register adds a restored point to the arena and advances the id
// sequence past it.
func (a *Arena) Register(p *Point) {
	a.points[p.ID] = p
	a.Reserve(p.ID)
}

// Reserve advances the id sequence past id
func (a *Arena) Reserve(id int) {
	if id >= a.nextID {
		a.nextID = id + 1
	}
}

// Forget removes a point from the registry
func (a *Arena) Forget(p *Point) {
	delete(a.points, p.ID)
}

// Counters returns a copy of the allocator state
func (a *Arena) Counters() Counters {
	names := make(map[string]int, len(a.names))
	for k, v := range a.names {
		names[k] = v
	}
	return Counters{NextID: a.nextID, Names: names}
}

// Restore loads allocator state. Counters never move backwards.
func (a *Arena) Restore(c Counters) {
	a.Reserve(c.NextID - 1)
	for k, v := range c.Names {
		if v > a.names[k] {
			a.names[k] = v
		}
	}
}

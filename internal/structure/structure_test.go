package structure_test

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gostatics/internal/element"
	"github.com/alexiusacademia/gostatics/internal/equation"
	"github.com/alexiusacademia/gostatics/internal/sample"
	"github.com/alexiusacademia/gostatics/internal/structure"
)

func TestGenerateAllEquilibriumOrder(t *testing.T) {
	st := sample.ThreeHingedArch()
	assert.Equal(t, []string{
		"1*F_P1x+0+0+1*F_P3x",
		"1*F_P1y+0+-100+1*F_P3y",
		"0+0+-2500+0+0+0+50*F_P3y+-50*F_P3x+0",
		"1*F_P4x+1*F_P5x",
		"1*F_P4y+1*F_P5y",
		"0+50*F_P5y+50*F_P5x+0",
		"-1*F_P3x+-1*F_P4x",
		"-1*F_P3y+-1*F_P4y",
	}, st.GenerateAllEquilibrium())
}

func TestPointsAreShared(t *testing.T) {
	st := sample.ThreeHingedArch()
	points := st.Points()
	require.Len(t, points, 5)

	l1 := st.Linkages()[0]
	joint := st.Connections()[2]
	assert.Same(t, l1.Points()[2], joint.Points()[0])
}

func TestRoundTrip(t *testing.T) {
	for _, name := range sample.Names() {
		for _, format := range []structure.Format{structure.JSON, structure.YAML} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				st, err := sample.Build(name)
				require.NoError(t, err)

				data, err := structure.Marshal(st, format)
				require.NoError(t, err)
				back, err := structure.Unmarshal(data, format)
				require.NoError(t, err)

				assert.Equal(t, st.GenerateAllEquilibrium(), back.GenerateAllEquilibrium())
				assert.Len(t, back.Points(), len(st.Points()))
				assertSharedInstances(t, back)
			})
		}
	}
}

// every point id must resolve to one instance across all elements
func assertSharedInstances(t *testing.T, st *structure.Structure) {
	t.Helper()
	byID := make(map[int]*element.Point)
	check := func(points []*element.Point) {
		for _, p := range points {
			if prev, ok := byID[p.ID]; ok {
				assert.Same(t, prev, p, "point %d forked", p.ID)
				continue
			}
			byID[p.ID] = p
			got, ok := st.Arena().Point(p.ID)
			assert.True(t, ok)
			assert.Same(t, p, got)
		}
	}
	for _, l := range st.Linkages() {
		check(l.Points())
	}
	for _, c := range st.Connections() {
		check(c.Points())
	}
}

func TestRoundTripKeepsCounters(t *testing.T) {
	st := sample.SimplySupportedBeam()
	data, err := structure.Marshal(st, structure.JSON)
	require.NoError(t, err)
	back, err := structure.Unmarshal(data, structure.JSON)
	require.NoError(t, err)

	p := back.Arena().NewPoint(0, 0)
	assert.Equal(t, "P4", p.Name)
	assert.Equal(t, st.Arena().NewPoint(0, 0).ID, p.ID)
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	for _, file := range []string{"beam.json", "nested/beam.yaml"} {
		path := filepath.Join(dir, file)
		st := sample.SimplySupportedBeam()
		require.NoError(t, structure.SaveToFile(st, path))

		back, err := structure.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, st.GenerateAllEquilibrium(), back.GenerateAllEquilibrium())
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, structure.YAML, structure.FormatFromPath("a.YML"))
	assert.Equal(t, structure.YAML, structure.FormatFromPath("a.yaml"))
	assert.Equal(t, structure.JSON, structure.FormatFromPath("a.json"))
	assert.Equal(t, structure.JSON, structure.FormatFromPath("a"))
}

func TestDecodeMalformed(t *testing.T) {
	tcs := map[string]string{
		"syntax":          `{"version": 1, "linkages": [`,
		"version":         `{"version": 2}`,
		"short linkage":   `{"version": 1, "linkages": [{"id": 1, "name": "L1", "points": [` + pointJSON(2, "P1", 0) + `]}]}`,
		"missing name":    `{"version": 1, "linkages": [{"id": 1, "points": [` + pointJSON(2, "P1", 0) + `,` + pointJSON(3, "P2", 1) + `]}]}`,
		"unknown kind":    `{"version": 1, "connections": [{"id": 1, "name": "C1", "kind": "hinge", "points": [` + pointJSON(2, "P1", 0) + `]}]}`,
		"conflicting id":  `{"version": 1, "linkages": [{"id": 1, "name": "L1", "points": [` + pointJSON(2, "P1", 0) + `,` + pointJSON(2, "P1", 5) + `]}]}`,
		"duplicate ids":   `{"version": 1, "linkages": [{"id": 2, "name": "L1", "points": [` + pointJSON(2, "P1", 0) + `,` + pointJSON(3, "P2", 1) + `]}]}`,
		"force without y": `{"version": 1, "connections": [{"id": 1, "name": "C1", "kind": "pin", "points": [` + pointJSON(2, "P1", 0) + `], "loads": [{"id": 3, "name": "F1", "kind": "force", "fx": {"symbol": "F1_x", "known": true}}]}]}`,
		"duplicate name":  `{"version": 1, "linkages": [{"id": 1, "name": "L1", "points": [` + pointJSON(2, "P1", 0) + `,` + pointJSON(3, "P1", 1) + `]}]}`,
		"symbol grammar":  `{"version": 1, "linkages": [{"id": 1, "name": "L1", "points": [` + pointJSON(2, "A+B", 0) + `,` + pointJSON(3, "P2", 1) + `]}]}`,
		"symbol spaces":   `{"version": 1, "linkages": [{"id": 1, "name": "L1", "points": [` + pointJSON(2, "A B", 0) + `,` + pointJSON(3, "P2", 1) + `]}]}`,
		"symbol mismatch": `{"version": 1, "connections": [{"id": 1, "name": "C1", "kind": "pin", "points": [{"id": 2, "name": "P1", "x": 0, "y": 0, "fx": {"symbol": "F_P1x"}, "fy": {"symbol": "F_P2y"}, "mz": {"symbol": "M_P1z"}}]}]}`,
		"load symbol":     `{"version": 1, "connections": [{"id": 1, "name": "C1", "kind": "pin", "points": [` + pointJSON(2, "P1", 0) + `], "loads": [{"id": 3, "name": "F1", "kind": "force", "fx": {"symbol": "F1_x", "known": true}, "fy": {"symbol": "F_P1x", "known": true}}]}]}`,
		"ground symbol":   `{"version": 1, "connections": [{"id": 1, "name": "C1", "kind": "hroller", "points": [` + pointJSON(2, "P1", 0) + `], "ground": {"symbol": "F_P1x"}}]}`,
		"half checkpoint": `{"version": 1, "connections": [{"id": 1, "name": "C1", "kind": "pin", "points": [{"id": 2, "name": "P1", "x": 0, "y": 0, "fx": {"symbol": "F_P1x", "checkpoint": {"known": false}}, "fy": {"symbol": "F_P1y"}, "mz": {"symbol": "M_P1z"}}]}]}`,
	}
	for name, in := range tcs {
		t.Run(name, func(t *testing.T) {
			st, err := structure.Unmarshal([]byte(in), structure.JSON)
			assert.ErrorIs(t, err, structure.ErrMalformedState)
			assert.Nil(t, st)
		})
	}
}

func pointJSON(id int, name string, x int) string {
	v := func(s string) string { return `{"symbol": "` + s + `"}` }
	return `{"id": ` + itoa(id) + `, "name": "` + name + `", "x": ` + itoa(x) + `, "y": 0, ` +
		`"fx": ` + v("F_"+name+"x") + `, "fy": ` + v("F_"+name+"y") + `, "mz": ` + v("M_"+name+"z") + `}`
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func TestRemovePointDeletesDegenerateElements(t *testing.T) {
	st := structure.New()
	a := st.Arena()
	p1, p2, p3 := a.NewPoint(0, 0), a.NewPoint(1, 0), a.NewPoint(2, 0)
	l := a.NewLinkage(p1, p2, p3)
	c := a.NewConnection(element.PinJoint, p1, p2)
	st.AddLinkage(l)
	st.AddConnection(c)

	assert.False(t, st.RemovePointFromLinkage(l, p3))
	assert.True(t, st.RemovePointFromLinkage(l, p2))
	assert.Empty(t, st.Linkages())

	assert.False(t, st.RemovePointFromConnection(c, p2))
	assert.True(t, p1.Mz.Known(), "remaining ground pin keeps its condition")
	assert.True(t, st.RemovePointFromConnection(c, p1))
	assert.Empty(t, st.Connections())
	assert.False(t, p1.Mz.Known())
}

func TestRemoveConnectionReleasesPoints(t *testing.T) {
	st := sample.SimplySupportedBeam()
	roller := st.Connections()[1]
	p2 := roller.Points()[0]
	require.True(t, p2.Fx.Known())

	assert.True(t, st.RemoveConnection(roller))
	assert.False(t, p2.Fx.Known())
	assert.False(t, p2.Mz.Known())
	assert.False(t, st.RemoveConnection(roller))
}

func TestVariables(t *testing.T) {
	st := structure.New()
	a := st.Arena()
	p, q := a.NewPoint(0, 0), a.NewPoint(0, 0)
	st.AddLinkage(a.NewLinkage(p, a.NewPoint(1, 0)))
	st.AddConnection(a.NewConnection(element.HorizontalRoller, p, q))

	vars := st.Variables()
	assert.Len(t, vars, 3*3+1)
	assert.Contains(t, vars, "F_C1y_ground")
}

func TestParsedEquationsMatchGenerated(t *testing.T) {
	for _, name := range sample.Names() {
		st, err := sample.Build(name)
		require.NoError(t, err)

		direct, err := equation.Assemble(st.Equations())
		require.NoError(t, err)
		parsed, err := equation.Parse(st.GenerateAllEquilibrium())
		require.NoError(t, err)
		assert.Equal(t, direct, parsed, name)
	}
}

func TestLoadsAndCasePersistence(t *testing.T) {
	st := structure.New()
	a := st.Arena()
	p1 := a.NewPoint(0, 0)
	p2 := a.NewPoint(10, 0)
	p3 := a.NewPoint(10, 0)

	live := a.NewForce(0, -5)
	live.Case = "L"
	p2.AddLoad(live)
	p3.AddLoad(a.NewMoment(3))

	st.AddLinkage(a.NewLinkage(p1, p2))
	st.AddConnection(a.NewConnection(element.Fixed, p1))
	st.AddConnection(a.NewConnection(element.PinJoint, p2, p3))

	// p2 and p3 hand their loads to the joint
	require.Len(t, st.Loads(), 2)

	data, err := structure.Marshal(st, structure.YAML)
	require.NoError(t, err)
	back, err := structure.Unmarshal(data, structure.YAML)
	require.NoError(t, err)

	cases := make(map[string]string)
	for _, l := range back.Loads() {
		cases[l.Name] = l.Case
	}
	assert.Equal(t, map[string]string{live.Name: "L", "M1": ""}, cases)

	bad := strings.Replace(string(data), "case: L", "case: snow", 1)
	_, err = structure.Unmarshal([]byte(bad), structure.YAML)
	assert.ErrorIs(t, err, structure.ErrMalformedState)
}

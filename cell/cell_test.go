package cell_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tlattice/cell"
)

const (
	crossbar = 25.0
	eps      = 1e-9
)

func TestNew_Defaults(t *testing.T) {
	c := cell.New(7)

	assert.Equal(t, cell.ID(7), c.ID())
	assert.Equal(t, cell.Idle, c.Mode())
	assert.Equal(t, cell.DefaultStemExtension, c.Sensor.StemExtension)
	assert.Equal(t, cell.DefaultTemperature, c.Sensor.Temperature)
	assert.Equal(t, cell.AutonomyDirected, c.Autonomy)
	assert.Equal(t, cell.RoleReserve, c.Role)
	assert.Equal(t, cell.ClassBare, c.Class)
	assert.Equal(t, cell.OwnershipIdle, c.ForceOwnership())
	assert.Equal(t, "N42", c.Target.MagnetGrade)
	assert.Zero(t, c.Degree())
}

func TestNew_Options(t *testing.T) {
	c := cell.New(1,
		cell.WithMode(cell.Rigid),
		cell.WithStemExtension(1.7),
		cell.WithRole(cell.RoleLoadBearing),
		cell.WithPose(cell.Pose{Position: cell.Vec2{X: 3, Z: 4}, Rotation: 1}),
	)
	assert.Equal(t, cell.Rigid, c.Mode())
	assert.Equal(t, 1.0, c.Sensor.StemExtension, "stem extension is clamped")
	assert.Equal(t, cell.RoleLoadBearing, c.Role)
	assert.Equal(t, 3.0, c.Pose.Position.X)
}

func TestTransition_FollowsTable(t *testing.T) {
	for _, from := range cell.Modes() {
		for _, to := range cell.Modes() {
			c := cell.New(1, cell.WithMode(from))
			allowed := cell.Allowed(from, to)

			require.Equal(t, allowed, c.CanTransition(to), "%s→%s", from, to)
			require.Equal(t, allowed, c.Transition(to), "%s→%s", from, to)
			if allowed {
				require.Equal(t, to, c.Mode())
			} else {
				require.Equal(t, from, c.Mode(), "refused transition must not change mode")
			}
		}
	}
}

func TestTransition_DeploymentPipeline(t *testing.T) {
	c := cell.New(1, cell.WithMode(cell.Rigid))

	require.True(t, c.Transition(cell.Release))
	require.False(t, c.Transition(cell.Rigid), "release cannot jump back to rigid")
	require.True(t, c.Transition(cell.InTransit))
	require.True(t, c.Transition(cell.AttractHome))
	require.True(t, c.Transition(cell.Flex))
	assert.Equal(t, cell.Flex, c.Mode())

	idle := cell.New(2)
	assert.False(t, idle.CanTransition(cell.Rigid))
	assert.Equal(t, []cell.Mode{cell.AttractHome, cell.InTransit}, cell.Reachable(cell.Idle))
}

func TestParseModeAndPoint(t *testing.T) {
	for _, m := range cell.Modes() {
		got, err := cell.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := cell.ParseMode("hover")
	assert.ErrorIs(t, err, cell.ErrUnknownMode)

	p, err := cell.ParsePoint("stemTip")
	require.NoError(t, err)
	assert.Equal(t, cell.StemTip, p)
	_, err = cell.ParsePoint("EP_L")
	assert.ErrorIs(t, err, cell.ErrUnknownPoint)
}

func TestConnectionWorldPosition(t *testing.T) {
	c := cell.New(1, cell.WithStemExtension(0.5))
	c.Pose = cell.Pose{Position: cell.Vec2{X: 10, Z: 20}}

	left, ok := c.ConnectionWorldPosition(cell.Left, crossbar)
	require.True(t, ok)
	assert.InDelta(t, 10-crossbar/2, left.X, eps)
	assert.InDelta(t, 20, left.Z, eps)

	tip, ok := c.ConnectionWorldPosition(cell.StemTip, crossbar)
	require.True(t, ok)
	assert.InDelta(t, 10, tip.X, eps)
	assert.InDelta(t, 20-0.5*crossbar*0.866, tip.Z, eps)

	// quarter turn: local +X maps to world +Z
	c.Pose.Rotation = math.Pi / 2
	right, ok := c.ConnectionWorldPosition(cell.Right, crossbar)
	require.True(t, ok)
	assert.InDelta(t, 10, right.X, eps)
	assert.InDelta(t, 20+crossbar/2, right.Z, eps)

	_, ok = c.ConnectionWorldPosition(cell.Point(9), crossbar)
	assert.False(t, ok)
}

func TestConnect_Symmetric(t *testing.T) {
	a, b := cell.New(1), cell.New(2)
	require.NoError(t, a.Connect(b, cell.Right, cell.Left, 0.9))

	la, ok := a.LinkTo(2)
	require.True(t, ok)
	lb, ok := b.LinkTo(1)
	require.True(t, ok)

	assert.Equal(t, cell.Link{Neighbor: 2, Local: cell.Right, Remote: cell.Left, Strength: 0.9}, la)
	assert.Equal(t, la.Mirror(1), lb)

	occ, ok := a.Occupant(cell.Right)
	require.True(t, ok)
	assert.Equal(t, cell.ID(2), occ)
	assert.True(t, b.Occupied(cell.Left))
	assert.False(t, a.Occupied(cell.Left))
}

func TestConnect_Preconditions(t *testing.T) {
	a, b, c := cell.New(1), cell.New(2), cell.New(3)
	require.NoError(t, a.Connect(b, cell.Right, cell.Left, 1))

	cases := []struct {
		name string
		do   func() error
		want error
	}{
		{"nil", func() error { return a.Connect(nil, cell.Left, cell.Left, 1) }, cell.ErrNilCell},
		{"self", func() error { return a.Connect(a, cell.Left, cell.Right, 1) }, cell.ErrSelfLink},
		{"bad point", func() error { return a.Connect(c, cell.Point(5), cell.Left, 1) }, cell.ErrUnknownPoint},
		{"zero strength", func() error { return a.Connect(c, cell.Left, cell.Left, 0) }, cell.ErrBadStrength},
		{"strength above one", func() error { return a.Connect(c, cell.Left, cell.Left, 1.2) }, cell.ErrBadStrength},
		{"already linked", func() error { return a.Connect(b, cell.Left, cell.Right, 1) }, cell.ErrAlreadyLinked},
		{"mine occupied", func() error { return a.Connect(c, cell.Right, cell.Left, 1) }, cell.ErrPointOccupied},
		{"theirs occupied", func() error { return c.Connect(b, cell.Left, cell.Left, 1) }, cell.ErrPointOccupied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.do(), tc.want)
		})
	}

	// nothing above may have changed state
	assert.Equal(t, 1, a.Degree())
	assert.Equal(t, 1, b.Degree())
	assert.Zero(t, c.Degree())
	assert.False(t, c.Occupied(cell.Left))
}

func TestDisconnect_OneSided(t *testing.T) {
	a, b := cell.New(1), cell.New(2)
	require.NoError(t, a.Connect(b, cell.StemTip, cell.Right, 0.5))

	assert.True(t, a.Disconnect(2))
	assert.False(t, a.Occupied(cell.StemTip))
	assert.Zero(t, a.Degree())

	// the other half is untouched until the caller mirrors the call
	assert.True(t, b.Occupied(cell.Right))
	assert.True(t, b.Disconnect(1))
	assert.False(t, b.Disconnect(1), "second disconnect is a no-op")
	assert.False(t, a.Disconnect(99))
}

func TestLinks_SortedByNeighbor(t *testing.T) {
	hub := cell.New(5)
	for i, p := range cell.Points {
		id := cell.ID(30 - 10*i) // 30, 20, 10
		require.NoError(t, hub.Connect(cell.New(id), p, cell.Left, 1))
	}
	assert.Equal(t, []cell.ID{10, 20, 30}, hub.NeighborIDs())

	links := hub.Links()
	require.Len(t, links, 3)
	assert.Equal(t, cell.ID(10), links[0].Neighbor)
	assert.Equal(t, cell.StemTip, links[0].Local)
}

package dfs_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tlattice/cell"
	"github.com/katalvlaran/tlattice/dfs"
)

// adj is a minimal undirected dfs.Graph used across tests.
type adj map[cell.ID][]cell.ID

func (a adj) HasCell(id cell.ID) bool {
	_, ok := a[id]
	return ok
}

func (a adj) Cells() []cell.ID {
	out := make([]cell.ID, 0, len(a))
	for id := range a {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (a adj) NeighborIDs(id cell.ID) ([]cell.ID, error) {
	ns, ok := a[id]
	if !ok {
		return nil, fmt.Errorf("missing %d", id)
	}
	out := append([]cell.ID(nil), ns...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func build(edges [][2]cell.ID, isolated ...cell.ID) adj {
	g := adj{}
	for _, id := range isolated {
		g[id] = nil
	}
	for _, e := range edges {
		g[e[0]] = append(g[e[0]], e[1])
		g[e[1]] = append(g[e[1]], e[0])
	}
	return g
}

// diamond: 1-2, 1-3, 2-4, 3-4, 4-5, 4-6.
func diamond() adj {
	return build([][2]cell.ID{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}, {4, 6}})
}

func TestDFS_NilGraph(t *testing.T) {
	res, err := dfs.DFS(nil, 1)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestDFS_StartNotFound(t *testing.T) {
	res, err := dfs.DFS(diamond(), 99)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dfs.ErrStartVertexNotFound)
}

func TestDFS_SingleCell(t *testing.T) {
	res, err := dfs.DFS(build(nil, 7), 7)
	require.NoError(t, err)
	assert.Equal(t, []cell.ID{7}, res.Order)
	assert.Equal(t, 0, res.Depth[7])
	_, hasParent := res.Parent[7]
	assert.False(t, hasParent)
}

func TestDFS_Diamond(t *testing.T) {
	res, err := dfs.DFS(diamond(), 1)
	require.NoError(t, err)

	assert.Equal(t, []cell.ID{3, 5, 6, 4, 2, 1}, res.Order)
	assert.Equal(t, map[cell.ID]int{1: 0, 2: 1, 4: 2, 3: 3, 5: 3, 6: 3}, res.Depth)
	assert.Equal(t, map[cell.ID]cell.ID{2: 1, 4: 2, 3: 4, 5: 4, 6: 4}, res.Parent)
	assert.Len(t, res.Visited, 6)
}

func TestDFS_MaxDepth(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  []cell.ID
	}{
		{"root only", 0, []cell.ID{1}},
		{"one hop", 1, []cell.ID{2, 3, 1}},
		{"unlimited", -1, []cell.ID{3, 5, 6, 4, 2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := dfs.DFS(diamond(), 1, dfs.WithMaxDepth(tc.limit))
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Order)
			assert.Len(t, res.Visited, len(tc.want))
		})
	}
}

func TestDFS_FilterNeighbor(t *testing.T) {
	res, err := dfs.DFS(diamond(), 1, dfs.WithFilterNeighbor(func(id cell.ID) bool { return id != 4 }))
	require.NoError(t, err)
	assert.Equal(t, []cell.ID{2, 3, 1}, res.Order)
	assert.Equal(t, 2, res.SkippedNeighbors)
	assert.False(t, res.Visited[4])
}

func TestDFS_Hooks(t *testing.T) {
	var pre, post []cell.ID
	_, err := dfs.DFS(diamond(), 1,
		dfs.WithOnVisit(func(id cell.ID) error { pre = append(pre, id); return nil }),
		dfs.WithOnExit(func(id cell.ID) error { post = append(post, id); return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []cell.ID{1, 2, 4, 3, 5, 6}, pre)
	assert.Equal(t, []cell.ID{3, 5, 6, 4, 2, 1}, post)
}

func TestDFS_HookErrors(t *testing.T) {
	stop := errors.New("stop")

	res, err := dfs.DFS(diamond(), 1, dfs.WithOnVisit(func(id cell.ID) error {
		if id == 4 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	assert.Nil(t, res.Order)

	res, err = dfs.DFS(diamond(), 1, dfs.WithOnExit(func(id cell.ID) error {
		if id == 5 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	assert.Nil(t, res.Order)
}

func TestDFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := dfs.DFS(diamond(), 1, dfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Empty(t, res.Order)
}

func TestDFS_FullTraversal(t *testing.T) {
	g := diamond()
	for id, ns := range build([][2]cell.ID{{8, 9}}, 7) {
		g[id] = ns
	}

	res, err := dfs.DFS(g, 0, dfs.WithFullTraversal())
	require.NoError(t, err)
	assert.Equal(t, []cell.ID{3, 5, 6, 4, 2, 1, 7, 9, 8}, res.Order)
	assert.Equal(t, [][]cell.ID{{3, 5, 6, 4, 2, 1}, {7}, {9, 8}}, res.Components())
	assert.Equal(t, cell.ID(8), res.Parent[9])
}

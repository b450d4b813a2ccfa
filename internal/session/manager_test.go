package session

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eigenmap/internal/linmap"
)

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager(nil)
	a := m.Create(defaultParams())
	b := m.Create(defaultParams())
	require.NotEqual(t, a.ID(), b.ID())

	_, err := a.Advance(3)
	require.NoError(t, err)
	b.SetInitial(linmap.Vec2{X: 1, Y: 2})

	assert.Len(t, a.Points(), 4)
	assert.Equal(t, linmap.Vec2{X: 9, Y: 7}, a.Points()[0])
	assert.Equal(t, []linmap.Vec2{{X: 1, Y: 2}}, b.Points())

	b.SetReal(linmap.RealBasis{Lambda1: 1, Lambda2: 1, V: [2][2]float64{{1, 1}, {1, 1}}})
	require.Error(t, b.Step())
	assert.Empty(t, a.Notice())
	assert.NotEmpty(t, b.Notice())
}

func TestManagerLookup(t *testing.T) {
	m := NewManager(nil)
	s := m.Create(defaultParams())

	got, err := m.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)

	m.Create(defaultParams())
	ids := m.List()
	assert.Len(t, ids, 2)
	assert.True(t, sort.StringsAreSorted(ids))

	m.Delete(s.ID())
	m.Delete(s.ID())
	assert.Equal(t, 1, m.Len())
	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

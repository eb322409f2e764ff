package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchAttr_IDRef(t *testing.T) {
	f := newFixture(t)
	s, ok := f.reg.GetSetByID("quiz-1")
	require.True(t, ok)

	ok, err := matchAttr(f.reg, s, Attr{ID: "quiz-1"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchAttr(f.reg, s, Attr{ID: "other"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchAttr_BareTruthy(t *testing.T) {
	f := newFixture(t)
	s, _ := f.reg.GetSetByID("quiz-1")

	ok, err := matchAttr(f.reg, s, Attr{Name: "isAvailable"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchAttr_StringEquality(t *testing.T) {
	f := newFixture(t)
	s, _ := f.reg.GetSetByID("quiz-1")

	ok, err := matchAttr(f.reg, s, Attr{Name: "type", Value: "quiz", HasValue: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchAttr(f.reg, s, Attr{Name: "type", Value: "total", HasValue: true})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchAttr_UnrecognisedAttributeErrors(t *testing.T) {
	f := newFixture(t)
	s, _ := f.reg.GetSetByID("quiz-1")

	_, err := matchAttr(f.reg, s, Attr{Name: "notARealAttribute"})
	assert.Error(t, err)
}

func TestMatchAttr_ModelID(t *testing.T) {
	f := newFixture(t)
	s, _ := f.reg.GetSetByID("quiz-1")

	ok, err := matchAttr(f.reg, s, Attr{Name: "modelId", Value: "q1", HasValue: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchAttr(f.reg, s, Attr{Name: "modelId", Value: "does-not-exist", HasValue: true})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchAll_RequiresEveryAttr(t *testing.T) {
	f := newFixture(t)
	s, _ := f.reg.GetSetByID("quiz-1")

	ok, err := matchAll(f.reg, s, []Attr{
		{Name: "type", Value: "quiz", HasValue: true},
		{Name: "isAvailable"},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matchAll(f.reg, s, []Attr{
		{Name: "type", Value: "quiz", HasValue: true},
		{Name: "isComplete"},
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

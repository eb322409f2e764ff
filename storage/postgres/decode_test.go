package postgres

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeState_Bools(t *testing.T) {
	blob, err := json.Marshal([]bool{true, false, true})
	require.NoError(t, err)

	value, err := decodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, value)
}

func TestDecodeState_Floats(t *testing.T) {
	blob, err := json.Marshal([]float64{1.5, 2.5})
	require.NoError(t, err)

	value, err := decodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, value)
}

func TestDecodeState_NestedBools(t *testing.T) {
	blob, err := json.Marshal([][]bool{{true}, {false, true}})
	require.NoError(t, err)

	value, err := decodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, [][]bool{{true}, {false, true}}, value)
}

func TestDecodeState_NestedFloats(t *testing.T) {
	blob, err := json.Marshal([][]float64{{1, 2}, {3, 4, 5}})
	require.NoError(t, err)

	value, err := decodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4, 5}}, value)
}

func TestDecodeState_Empty(t *testing.T) {
	blob, err := json.Marshal([]float64{})
	require.NoError(t, err)

	value, err := decodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, []float64{}, value)
}

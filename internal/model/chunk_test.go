package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseVector_Value(t *testing.T) {
	v, err := SparseVector{"cat": 2}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"cat":2}`, v.(string))

	v, err = SparseVector(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestSparseVector_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  SparseVector
	}{
		{"bytes", []byte(`{"cat":2,"dog":1}`), SparseVector{"cat": 2, "dog": 1}},
		{"string", `{"cat":1}`, SparseVector{"cat": 1}},
		{"null column", nil, SparseVector{}},
		{"json null", []byte(`null`), SparseVector{}},
		{"malformed", []byte(`{"cat":`), SparseVector{}},
		{"wrong shape", []byte(`["cat"]`), SparseVector{}},
		{"unexpected type", 42, SparseVector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v SparseVector
			require.NoError(t, v.Scan(tt.input))
			assert.Equal(t, tt.want, v)
		})
	}
}

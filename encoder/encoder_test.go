package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeLayout(t *testing.T) {
	e := NewEncoder()
	require.Equal(t, []byte{byte(OpKindSet), 'h', 'i'}, e.Encode(OpKindSet, []byte("hi")))
	require.Equal(t, []byte{byte(OpKindDelete)}, e.Encode(OpKindDelete, nil))
}

func TestParse(t *testing.T) {
	e := NewEncoder()

	ev, err := e.Parse(e.Encode(OpKindSet, []byte("value")))
	require.NoError(t, err)
	require.False(t, ev.IsTombstone())
	require.Equal(t, OpKindSet, ev.Kind())
	require.Equal(t, []byte("value"), ev.Value())

	ev, err = e.Parse(e.Encode(OpKindDelete, nil))
	require.NoError(t, err)
	require.True(t, ev.IsTombstone())
	require.Empty(t, ev.Value())
}

func TestParseCopiesValue(t *testing.T) {
	e := NewEncoder()
	raw := e.Encode(OpKindSet, []byte("abc"))
	ev, err := e.Parse(raw)
	require.NoError(t, err)

	raw[1] = 'z'
	require.Equal(t, []byte("abc"), ev.Value())
}

func TestParseEmpty(t *testing.T) {
	_, err := NewEncoder().Parse(nil)
	require.ErrorIs(t, err, ErrEmptyValue)
}

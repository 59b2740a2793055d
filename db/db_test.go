package db

import (
	"fmt"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	d := Open(0)

	d.Set([]byte("k"), []byte("v1"))
	val, err := d.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), val)

	d.Set([]byte("k"), []byte("v2"))
	val, err = d.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), val)

	d.Delete([]byte("k"))
	_, err = d.Get([]byte("k"))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = d.Get([]byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRotationKeepsNewestValue(t *testing.T) {
	d := Open(64)

	want := make(map[string]string)
	for i := 0; i < 200; i++ {
		k := fmt.Sprintf("%s-%d", faker.Word(), i%50)
		v := faker.Word()
		d.Set([]byte(k), []byte(v))
		want[k] = v
	}
	require.Greater(t, d.Memtables(), 1)

	for k, v := range want {
		got, err := d.Get([]byte(k))
		require.NoError(t, err)
		require.Equal(t, v, string(got))
	}
}

func TestTombstoneShadowsOlderMemtable(t *testing.T) {
	d := Open(16)
	d.Set([]byte("key"), []byte("value"))
	d.Set([]byte("other"), []byte("value"))
	require.Equal(t, 2, d.Memtables())

	d.Delete([]byte("key"))
	_, err := d.Get([]byte("key"))
	require.ErrorIs(t, err, ErrNotFound)

	val, err := d.Get([]byte("other"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), val)
}

package qparams

import (
	"testing"

	"github.com/cobalt-web/cobalt/ajp"
	"github.com/cobalt-web/cobalt/kv"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, query string) []kv.Pair {
	into := kv.New()
	_, err := Parse([]byte(query), nil, into)
	require.NoError(t, err)

	return into.Expose()
}

func TestParse(t *testing.T) {
	t.Run("pairs and a flag", func(t *testing.T) {
		want := []kv.Pair{
			{Key: "a", Value: "1"},
			{Key: "b", Value: "2"},
			{Key: "c", Value: ""},
		}
		require.Equal(t, want, parse(t, "a=1&b=2&c"))
	})

	t.Run("escaped value and empty key", func(t *testing.T) {
		want := []kv.Pair{
			{Key: "a", Value: "&"},
			{Key: "", Value: "x"},
		}
		require.Equal(t, want, parse(t, "a=%26&=x"))
	})

	t.Run("empty segments are skipped", func(t *testing.T) {
		want := []kv.Pair{
			{Key: "a", Value: "1"},
			{Key: "b", Value: "2"},
		}
		require.Equal(t, want, parse(t, "a=1&&b=2&"))
		require.Equal(t, want, parse(t, "&a=1&b=2"))
	})

	t.Run("only the first equals splits", func(t *testing.T) {
		want := []kv.Pair{
			{Key: "a", Value: "b=c"},
		}
		require.Equal(t, want, parse(t, "a=b=c"))
	})

	t.Run("plus is a space", func(t *testing.T) {
		want := []kv.Pair{
			{Key: "full name", Value: "John Doe"},
		}
		require.Equal(t, want, parse(t, "full+name=John+Doe"))
	})

	t.Run("empty query", func(t *testing.T) {
		require.Empty(t, parse(t, ""))
	})

	t.Run("sole flag", func(t *testing.T) {
		want := []kv.Pair{
			{Key: "debug", Value: ""},
		}
		require.Equal(t, want, parse(t, "debug"))
	})

	t.Run("bad escape in key", func(t *testing.T) {
		_, err := Parse([]byte("a%zz=1"), nil, kv.New())
		require.EqualError(t, err, ajp.ErrURIDecoding.Error())
	})

	t.Run("bad escape in value", func(t *testing.T) {
		_, err := Parse([]byte("a=%2"), nil, kv.New())
		require.EqualError(t, err, ajp.ErrURIDecoding.Error())
	})

	t.Run("components share the buffer", func(t *testing.T) {
		into := kv.New()
		buff, err := Parse([]byte("a=%41&b=%42"), make([]byte, 0, 64), into)
		require.NoError(t, err)
		require.Equal(t, 64, cap(buff))

		want := []kv.Pair{
			{Key: "a", Value: "A"},
			{Key: "b", Value: "B"},
		}
		require.Equal(t, want, into.Expose())
	})
}

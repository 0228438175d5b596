package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileIsIOError(t *testing.T) {
	_, err := Open("testdata/does-not-exist.sk")
	require.Error(t, err)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "testdata/does-not-exist.sk", ioErr.Path)
}

func TestPeekAdvanceRewind(t *testing.T) {
	src := New("in-memory", []byte("ab"))
	require.False(t, src.AtEnd())
	require.Equal(t, byte('a'), src.Peek(0))
	require.Equal(t, byte('b'), src.Peek(1))
	require.Equal(t, byte(0), src.Peek(2))

	require.Equal(t, byte('a'), src.Advance())
	require.Equal(t, 1, src.Offset())
	require.Equal(t, byte('b'), src.Peek(0))

	src.Rewind()
	require.Equal(t, 0, src.Offset())
	require.Equal(t, byte('a'), src.Peek(0))

	src.Rewind()
	require.Equal(t, 0, src.Offset(), "rewind at the start is a no-op")

	require.Equal(t, byte('a'), src.Advance())
	require.Equal(t, byte('b'), src.Advance())
	require.True(t, src.AtEnd())
	require.Equal(t, byte(0), src.Advance(), "advance past the end yields 0 and does not move")
	require.Equal(t, 2, src.Offset())
}

func TestPositionRoundTrip(t *testing.T) {
	src := New("in-memory", []byte("ab\ncd\n\nef"))

	cases := []struct {
		offset int
		want   Position
	}{
		{0, Position{Offset: 0, Line: 1, Column: 1}},
		{2, Position{Offset: 2, Line: 1, Column: 3}},
		{3, Position{Offset: 3, Line: 2, Column: 1}},
		{5, Position{Offset: 5, Line: 2, Column: 3}},
		{6, Position{Offset: 6, Line: 3, Column: 1}},
		{7, Position{Offset: 7, Line: 4, Column: 1}},
		{9, Position{Offset: 9, Line: 4, Column: 3}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, src.Position(tc.offset))
	}
}

func TestLineText(t *testing.T) {
	src := New("in-memory", []byte("one\ntwo\nthree"))
	require.Equal(t, "one", src.LineText(1))
	require.Equal(t, "two", src.LineText(2))
	require.Equal(t, "three", src.LineText(3))
	require.Equal(t, "", src.LineText(4))
	require.Equal(t, "", src.LineText(0))
}

package bitmap

import (
	"bytes"
	"io"
	"testing"

	"seqscope/internal/common"

	"github.com/stretchr/testify/require"
)

func TestNewBitmap(t *testing.T) {
	tests := []struct {
		numBits      uint64
		expectedSize int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{256, 32},
		{257, 33},
	}

	for _, tt := range tests {
		b := NewBitmap(tt.numBits)
		require.Len(t, b.Bytes(), tt.expectedSize, "NewBitmap(%d) data size", tt.numBits)
		require.Equal(t, tt.numBits, b.Len())
		require.Zero(t, b.Count())
	}
}

func TestSymbolSet(t *testing.T) {
	b := NewBitmap(256)
	for _, c := range []byte("ACGT") {
		b.Add(uint64(c))
	}

	for c := 0; c < 256; c++ {
		want := bytes.IndexByte([]byte("ACGT"), byte(c)) >= 0
		require.Equal(t, want, b.Contains(uint64(c)), "symbol %q", byte(c))
	}
	require.Equal(t, uint64(4), b.Count())
}

func TestAddRemoveIdempotent(t *testing.T) {
	b := NewBitmap(64)

	b.Add(42)
	b.Add(42)
	require.True(t, b.Contains(42))
	require.Equal(t, uint64(1), b.Count())

	b.Remove(42)
	b.Remove(42)
	require.False(t, b.Contains(42))
	require.Zero(t, b.Count())
}

func TestBoundsChecking(t *testing.T) {
	b := NewBitmap(64)

	require.Panics(t, func() { b.Add(64) })
	require.Panics(t, func() { b.Contains(64) })
	require.Panics(t, func() { b.Remove(64) })
}

func TestBytesAndFromBytes(t *testing.T) {
	original := NewBitmap(100)
	for _, pos := range []uint64{0, 1, 7, 8, 15, 16, 31, 32, 63, 64, 99} {
		original.Add(pos)
	}

	restored := NewBitmapFromBytes(100, original.Bytes())
	for i := uint64(0); i < 100; i++ {
		require.Equal(t, original.Contains(i), restored.Contains(i), "bit %d mismatch", i)
	}
}

func TestWriteAndReadBitmap(t *testing.T) {
	original := NewBitmap(300)
	for i := uint64(0); i < 300; i += 7 {
		original.Add(i)
	}

	var buf bytes.Buffer
	n, err := WriteBitmap(&buf, original)
	require.NoError(t, err)
	require.Equal(t, 8+len(original.Bytes()), n)

	restored, err := ReadBitmap(&buf)
	require.NoError(t, err)
	require.Equal(t, original.Len(), restored.Len())
	require.Equal(t, original.Bytes(), restored.Bytes())
}

func TestReadBitmapTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteBitmap(&buf, NewBitmap(64))
	require.NoError(t, err)

	_, err = ReadBitmap(bytes.NewReader(buf.Bytes()[:10]))
	require.Error(t, err)
}

func TestReadBitmapOversizedHeader(t *testing.T) {
	var buf bytes.Buffer
	_, err := common.WriteUint64(&buf, 1<<62)
	require.NoError(t, err)
	buf.Write([]byte{0xff, 0xff})

	b, err := ReadBitmap(&buf)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Nil(t, b)
}

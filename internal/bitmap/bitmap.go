package bitmap

import (
	"fmt"
	"io"
	"math/bits"

	"seqscope/internal/common"
)

type bitmapImpl struct {
	data    []byte // each byte stores 8 bits, LSB first
	numBits uint64
}

var _ Bitmap = (*bitmapImpl)(nil)

// NewBitmap creates a bitmap with numBits bits, all clear.
func NewBitmap(numBits uint64) Bitmap {
	return &bitmapImpl{
		data:    make([]byte, (numBits+7)/8),
		numBits: numBits,
	}
}

// NewBitmapFromBytes wraps previously serialized bits. data is copied and
// padded or truncated to fit numBits.
func NewBitmapFromBytes(numBits uint64, data []byte) Bitmap {
	b := &bitmapImpl{
		data:    make([]byte, (numBits+7)/8),
		numBits: numBits,
	}
	copy(b.data, data)
	return b
}

func (b *bitmapImpl) check(i uint64) {
	if i >= b.numBits {
		panic(fmt.Sprintf("bitmap: index %d out of range [0, %d)", i, b.numBits))
	}
}

func (b *bitmapImpl) Add(i uint64) {
	b.check(i)
	b.data[i/8] |= 1 << (i % 8)
}

func (b *bitmapImpl) Remove(i uint64) {
	b.check(i)
	b.data[i/8] &^= 1 << (i % 8)
}

func (b *bitmapImpl) Contains(i uint64) bool {
	b.check(i)
	return b.data[i/8]&(1<<(i%8)) != 0
}

func (b *bitmapImpl) Len() uint64 {
	return b.numBits
}

func (b *bitmapImpl) Count() uint64 {
	var n int
	for _, v := range b.data {
		n += bits.OnesCount8(v)
	}
	return uint64(n)
}

func (b *bitmapImpl) Bytes() []byte {
	return b.data
}

// WriteBitmap serializes a bitmap.
// Format: [8 bytes: numBits][data bytes]
func WriteBitmap(w io.Writer, b Bitmap) (int, error) {
	total, err := common.WriteUint64(w, b.Len())
	if err != nil {
		return total, err
	}
	n, err := common.WriteBytes(w, b.Bytes())
	return total + n, err
}

// ReadBitmap deserializes a bitmap written by WriteBitmap.
func ReadBitmap(r io.Reader) (Bitmap, error) {
	numBits, err := common.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	data, err := common.ReadBytes(r, (numBits+7)/8)
	if err != nil {
		return nil, err
	}
	return &bitmapImpl{data: data, numBits: numBits}, nil
}

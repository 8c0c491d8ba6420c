package filter

import (
	"hash/fnv"
	"io"
	"math"

	"seqscope/internal/bitmap"
	"seqscope/internal/common"
)

type bloomFilter struct {
	bitmap bitmap.Bitmap
	k      uint32 // number of hash functions
	m      uint32 // number of bits
}

var _ Filter = (*bloomFilter)(nil)

// OptimalBloomFilterParams sizes a filter for n identifiers at false
// positive rate p.
//
//	m = -n * ln(p) / ln(2)^2
//	k = m/n * ln(2)
func OptimalBloomFilterParams(n uint64, p float64) (k uint32, m uint32) {
	if n == 0 {
		n = 1
	}
	m = uint32(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m < 8 {
		m = 8
	}
	k = uint32(math.Ceil(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k, m
}

func NewBloomFilter(k uint32, m uint32) Filter {
	return &bloomFilter{
		bitmap: bitmap.NewBitmap(uint64(m)),
		k:      k,
		m:      m,
	}
}

// NewBloomFilterFor sizes a filter for n identifiers at a 1% false positive rate.
func NewBloomFilterFor(n int) Filter {
	return NewBloomFilter(OptimalBloomFilterParams(uint64(n), 0.01))
}

func (bf *bloomFilter) Add(id string) {
	h1, h2 := hash(id)
	for i := uint32(0); i < bf.k; i++ {
		bf.bitmap.Add((h1 + uint64(i)*h2) % uint64(bf.m))
	}
}

func (bf *bloomFilter) MayContain(id string) bool {
	h1, h2 := hash(id)
	for i := uint32(0); i < bf.k; i++ {
		if !bf.bitmap.Contains((h1 + uint64(i)*h2) % uint64(bf.m)) {
			return false
		}
	}
	return true
}

// hash derives the two FNV-1a values used for double hashing.
func hash(id string) (uint64, uint64) {
	h := fnv.New64a()
	h.Write([]byte(id))
	h1 := h.Sum64()

	h.Write([]byte{0x01})
	h2 := h.Sum64()
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

// WriteBloomFilter serializes a bloom filter.
// Format: [k: uint32][m: uint32][bitmap data]
func WriteBloomFilter(w io.Writer, f Filter) (int, error) {
	bf := f.(*bloomFilter)

	total, err := common.WriteUint32(w, bf.k)
	if err != nil {
		return total, err
	}
	n, err := common.WriteUint32(w, bf.m)
	total += n
	if err != nil {
		return total, err
	}
	n, err = common.WriteBytes(w, bf.bitmap.Bytes())
	total += n
	return total, err
}

// ReadBloomFilter deserializes a filter written by WriteBloomFilter.
func ReadBloomFilter(r io.Reader) (Filter, error) {
	k, err := common.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	m, err := common.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	data, err := common.ReadBytes(r, (uint64(m)+7)/8)
	if err != nil {
		return nil, err
	}
	return &bloomFilter{
		bitmap: bitmap.NewBitmapFromBytes(uint64(m), data),
		k:      k,
		m:      m,
	}, nil
}

package filter

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimalBloomFilterParams(t *testing.T) {
	tests := []struct {
		n            uint64
		p            float64
		expectedK    uint32
		expectedMMin uint32
	}{
		{100, 0.01, 7, 900},    // ~958 bits for 100 elements at 1% FP
		{1000, 0.01, 7, 9000},  // ~9585 bits for 1000 elements at 1% FP
		{100, 0.001, 10, 1400}, // ~1438 bits for 100 elements at 0.1% FP
	}

	for _, tt := range tests {
		k, m := OptimalBloomFilterParams(tt.n, tt.p)
		require.Equal(t, tt.expectedK, k, "k for n=%d p=%f", tt.n, tt.p)
		require.GreaterOrEqual(t, m, tt.expectedMMin, "m for n=%d p=%f", tt.n, tt.p)
	}
}

func TestOptimalBloomFilterParamsZero(t *testing.T) {
	k, m := OptimalBloomFilterParams(0, 0.01)
	require.GreaterOrEqual(t, k, uint32(1))
	require.GreaterOrEqual(t, m, uint32(8))
}

func TestBloomFilterFalsePositiveRate(t *testing.T) {
	const n = 1000
	p := 0.01

	bf := NewBloomFilterFor(n)
	for i := 0; i < n; i++ {
		bf.Add(fmt.Sprintf("contig_%05d", i))
	}

	const probes = 10000
	falsePositives := 0
	for i := n; i < n+probes; i++ {
		if bf.MayContain(fmt.Sprintf("contig_%05d", i)) {
			falsePositives++
		}
	}

	observed := float64(falsePositives) / probes
	require.LessOrEqual(t, observed, p*5, "false positive rate %.4f", observed)
}

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	bf := NewBloomFilter(5, 10000)

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = fmt.Sprintf("sp|P%05d|PROT", i)
		bf.Add(ids[i])
	}
	for _, id := range ids {
		require.True(t, bf.MayContain(id), "id %s should be found", id)
	}
}

func TestBloomFilterWriteAndRead(t *testing.T) {
	original := NewBloomFilter(4, 1000)
	ids := []string{"human", "mouse", "cat"}
	for _, id := range ids {
		original.Add(id)
	}

	var buf bytes.Buffer
	n, err := WriteBloomFilter(&buf, original)
	require.NoError(t, err)
	require.Equal(t, 4+4+(1000+7)/8, n)

	restored, err := ReadBloomFilter(&buf)
	require.NoError(t, err)
	for _, id := range ids {
		require.True(t, restored.MayContain(id))
	}
	require.Equal(t, original.(*bloomFilter).bitmap.Bytes(), restored.(*bloomFilter).bitmap.Bytes())
}

func TestReadBloomFilterTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := WriteBloomFilter(&buf, NewBloomFilter(3, 256))
	require.NoError(t, err)

	_, err = ReadBloomFilter(bytes.NewReader(buf.Bytes()[:12]))
	require.Error(t, err)
}

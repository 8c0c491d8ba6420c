package bitmap

// Bitmap is a fixed-size set of small integers backed by a bit array.
type Bitmap interface {
	// Add sets bit i.
	Add(i uint64)
	// Remove clears bit i.
	Remove(i uint64)
	// Contains reports whether bit i is set.
	Contains(i uint64) bool
	// Len returns the capacity in bits.
	Len() uint64
	// Count returns the number of set bits.
	Count() uint64
	// Bytes returns the backing array. Callers must not modify it.
	Bytes() []byte
}

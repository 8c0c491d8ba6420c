package common

import "testing"

// RequireMatchesIterator drains iter and compares each record to the
// expected slice. Fails immediately on mismatch. The iterator is not closed.
func RequireMatchesIterator(t *testing.T, iter RecordIterator, expected []Record) {
	t.Helper()

	for i := range expected {
		rec, ok, err := iter.Next()
		if err != nil {
			t.Fatalf("unexpected iterator error at %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("iterator exhausted at index %d", i)
		}
		if !rec.Equal(expected[i]) {
			t.Fatalf("record mismatch at %d: got %+v want %+v", i, rec, expected[i])
		}
	}

	rec, ok, err := iter.Next()
	if err != nil {
		t.Fatalf("unexpected iterator error at end: %v", err)
	}
	if ok {
		t.Fatalf("expected iterator to be exhausted, got %+v", rec)
	}
}

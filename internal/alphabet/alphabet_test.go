package alphabet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinMembership(t *testing.T) {
	tests := []struct {
		name    string
		a       *Alphabet
		valid   string
		invalid string
	}{
		{"DNA", DNA, "ACGTNacgtn", "UXRY-*"},
		{"RNA", RNA, "ACGUNacgun", "T"},
		{"IUPAC", IUPAC, "ACGTURYSWKMBDHVN-*.", "EFIJ"},
		{"Protein", Protein, "ACDEFGHIKLMNPQRSTVWYmkv*", "1@ "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < len(tt.valid); i++ {
				require.True(t, tt.a.Contains(tt.valid[i]), "%q should be valid", tt.valid[i])
			}
			for i := 0; i < len(tt.invalid); i++ {
				require.False(t, tt.a.Contains(tt.invalid[i]), "%q should be invalid", tt.invalid[i])
			}
		})
	}
}

func TestAnyAcceptsEverything(t *testing.T) {
	for c := 0; c < 256; c++ {
		require.True(t, Any.Contains(byte(c)))
	}
	require.Equal(t, -1, Any.FirstInvalid([]byte("\x00\xff!")))
}

func TestFirstInvalid(t *testing.T) {
	require.Equal(t, -1, DNA.FirstInvalid([]byte("ACCGTGATGTAGAGACCACGGGCCC")))
	require.Equal(t, 4, DNA.FirstInvalid([]byte("ACGTXACGT")))
	require.Equal(t, -1, DNA.FirstInvalid(nil))
}

func TestLookup(t *testing.T) {
	a, err := Lookup(" DNA ")
	require.NoError(t, err)
	require.Same(t, DNA, a)

	_, err = Lookup("klingon")
	require.ErrorContains(t, err, "unknown alphabet")

	require.Equal(t, []string{"any", "dna", "iupac", "protein", "rna"}, Names())
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"strict", PolicyStrict, false},
		{"", PolicyStrict, false},
		{"Permissive", PolicyPermissive, false},
		{"lenient", PolicyPermissive, false},
		{"whatever", PolicyStrict, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, p)
		})
	}
	require.Equal(t, "permissive", PolicyPermissive.String())
}

package reader

import (
	"seqscope/internal/alphabet"

	"go.uber.org/zap"
)

type Options struct {
	Alphabet   *alphabet.Alphabet
	Policy     alphabet.Policy
	AllowEmpty bool
	BufferSize int
	Logger     *zap.Logger
}

var DefaultOptions = Options{
	Alphabet:   alphabet.IUPAC,
	Policy:     alphabet.PolicyStrict,
	AllowEmpty: false,
	BufferSize: 64 << 10,
}

type Option func(*Options)

// WithAlphabet sets the alphabet payload symbols are checked against.
func WithAlphabet(a *alphabet.Alphabet) Option {
	return func(o *Options) {
		o.Alphabet = a
	}
}

// WithPolicy chooses between rejecting and passing through foreign symbols.
func WithPolicy(p alphabet.Policy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// WithEmptyRecords accepts records that have a delimiter line but no payload,
// including a truncated trailing record.
func WithEmptyRecords(allow bool) Option {
	return func(o *Options) {
		o.AllowEmpty = allow
	}
}

func WithBufferSize(n int) Option {
	return func(o *Options) {
		o.BufferSize = n
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

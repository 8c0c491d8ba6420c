package filter

// Filter answers "is this identifier possibly present?" without false
// negatives. A false answer is definitive; a true answer may be wrong.
type Filter interface {
	Add(id string)
	MayContain(id string) bool
}

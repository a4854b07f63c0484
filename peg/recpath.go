package peg

// memoKey identifies a rule application at an input position.
type memoKey struct {
	rule int // index of the rule
	pos  int
}

// recPath is the set of rule applications currently active on the call
// stack. The value flags an application as the head of a left recursive
// cycle.
type recPath map[memoKey]bool

func (rp recPath) enter(k memoKey) {
	rp[k] = false
}

func (rp recPath) contains(k memoKey) bool {
	_, ok := rp[k]
	return ok
}

func (rp recPath) markHead(k memoKey) {
	rp[k] = true
}

func (rp recPath) isHead(k memoKey) bool {
	return rp[k]
}

func (rp recPath) leave(k memoKey) {
	delete(rp, k)
}

package scanner

// --- Category codes --------------------------------------------------------

// CatCode is the category of an input rune, as seen by a finite automaton.
type CatCode int16

// IllegalCatCode is the category of runes no automaton will accept.
const IllegalCatCode CatCode = 0

// RuneCategorizer maps runes to categories.
type RuneCategorizer func(r rune) CatCode

// --- Finite automata -------------------------------------------------------

const reject = -1

// FA is a deterministic finite automaton working on rune categories.
// State 0 is the initial state. Transitions not present in the table
// lead to rejection.
type FA struct {
	Name      string
	cat       RuneCategorizer
	delta     [][]int // delta[state][category] = next state or reject
	accepting []bool
}

// Recognize runs the automaton on s. It returns true if s is accepted.
// Otherwise, the int result is the byte index of the rune the automaton got
// stuck on, or len(s) if the input ended in a non-accepting state.
func (fa *FA) Recognize(s string) (bool, int) {
	state := 0
	for i, r := range s {
		c := fa.cat(r)
		if int(c) >= len(fa.delta[state]) {
			return false, i
		}
		if state = fa.delta[state][c]; state == reject {
			return false, i
		}
	}
	if !fa.accepting[state] {
		return false, len(s)
	}
	return true, len(s)
}

// Rune categories for identifiers and integer constants.
const (
	catLetter CatCode = iota + 1
	catZero
	catNonZero
	catMinus
)

func categorize(r rune) CatCode {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return catLetter
	case r == '0':
		return catZero
	case r >= '1' && r <= '9':
		return catNonZero
	case r == '-':
		return catMinus
	}
	return IllegalCatCode
}

//                        illegal  letter  zero    nonzero minus
var identifierDelta = [][]int{
	/* q0 */ {reject, 1, reject, reject, reject},
	/* q1 */ {reject, 1, 1, 1, reject},
}

// IdentifierFA recognizes identifiers: a letter followed by letters and digits.
var IdentifierFA = &FA{
	Name:      "identifier",
	cat:       categorize,
	delta:     identifierDelta,
	accepting: []bool{false, true},
}

//                     illegal  letter  zero    nonzero minus
var integerDelta = [][]int{
	/* q0 */ {reject, reject, 2, 3, 1},
	/* q1 */ {reject, reject, reject, 3, reject}, // after '-'
	/* q2 */ {reject, reject, reject, reject, reject}, // single '0'
	/* q3 */ {reject, reject, 3, 3, reject},
}

// IntegerFA recognizes integer constants: 0, or an optional minus sign
// followed by a non-zero digit and any number of digits.
// Leading zeros and "-0" are rejected.
var IntegerFA = &FA{
	Name:      "integer",
	cat:       categorize,
	delta:     integerDelta,
	accepting: []bool{false, false, true, true},
}

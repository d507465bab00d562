package konami

type stateKind int

const (
	stateUp stateKind = iota
	stateDown
	stateLeft
	stateRight
	stateLeftRight
	stateLeftLeft
	stateRightRight
	stateLeftRightLeft
	stateLeftRightLeftRight
	stateB
	stateA
	stateBA
	stateBB
	stateAA
	stateAB
	stateS
	stateSt
	stateSta
	stateStar
)

// Most tokens can repeat at most three times in a row.
const maxRepeats = 3

// repeatDigits maps the number of consecutive up (or down) tokens to the
// digit they represent. Zero tokens is a valid encoding of 3.
var repeatDigits = [maxRepeats + 1]int{3, 2, 0, 1}

// parseState is the decoder's position within a token group along with the
// part of the byte accumulated so far. count is only meaningful for the up
// and down states.
type parseState struct {
	kind  stateKind
	value int
	count int
}

func to(kind stateKind, value int) (parseState, bool, error) {
	return parseState{kind: kind, value: value}, false, nil
}

// step consumes c at index pos and returns the next state. The returned bool
// is true when c completed a group, in which case s.value is the decoded byte
// and the next state is the start of a new group.
func (s parseState) step(pos int, c rune) (parseState, bool, error) {
	switch s.kind {
	case stateUp:
		if s.count > maxRepeats {
			return s, false, &TooManyRepeatsError{Position: pos}
		}
		ones := repeatDigits[s.count]
		switch c {
		case '^':
			return parseState{kind: stateUp, count: s.count + 1}, false, nil
		case 'v':
			return parseState{kind: stateDown, value: ones, count: 1}, false, nil
		case '<':
			return to(stateLeft, ones+12)
		case '>':
			return to(stateRight, ones+12)
		}

	case stateDown:
		if s.count > maxRepeats {
			return s, false, &TooManyRepeatsError{Position: pos}
		}
		fours := repeatDigits[s.count] * 4
		switch c {
		case 'v':
			return parseState{kind: stateDown, value: s.value, count: s.count + 1}, false, nil
		case '<':
			return to(stateLeft, s.value+fours)
		case '>':
			return to(stateRight, s.value+fours)
		}

	case stateLeft:
		switch c {
		case '>':
			return to(stateLeftRight, s.value)
		case '<':
			return to(stateLeftLeft, s.value)
		}

	case stateRight:
		if c == '>' {
			return to(stateRightRight, s.value)
		}

	case stateLeftRight:
		switch c {
		case '<':
			return to(stateLeftRightLeft, s.value)
		case 'b':
			return to(stateB, s.value+16)
		case 'a':
			return to(stateA, s.value+16)
		}

	case stateLeftLeft:
		switch c {
		case 'b':
			return to(stateB, s.value+32)
		case 'a':
			return to(stateA, s.value+32)
		}

	case stateRightRight:
		switch c {
		case 'b':
			return to(stateB, s.value+48)
		case 'a':
			return to(stateA, s.value+48)
		}

	case stateLeftRightLeft:
		if c == '>' {
			return to(stateLeftRightLeftRight, s.value)
		}

	case stateLeftRightLeftRight:
		switch c {
		case 'b':
			return to(stateB, s.value)
		case 'a':
			return to(stateA, s.value)
		}

	case stateB:
		switch c {
		case 'a':
			return to(stateBA, s.value)
		case 'b':
			return to(stateBB, s.value)
		}

	case stateA:
		switch c {
		case 'a':
			return to(stateAA, s.value)
		case 'b':
			return to(stateAB, s.value)
		}

	case stateBA:
		if c == 'S' {
			return to(stateS, s.value)
		}
	case stateBB:
		if c == 'S' {
			return to(stateS, s.value+64)
		}
	case stateAA:
		if c == 'S' {
			return to(stateS, s.value+128)
		}
	case stateAB:
		if c == 'S' {
			return to(stateS, s.value+192)
		}

	// Rest of the terminator.
	case stateS:
		if c == 't' {
			return to(stateSt, s.value)
		}
	case stateSt:
		if c == 'a' {
			return to(stateSta, s.value)
		}
	case stateSta:
		if c == 'r' {
			return to(stateStar, s.value)
		}
	case stateStar:
		if c == 't' {
			return parseState{kind: stateUp}, true, nil
		}
	}

	return s, false, &UnexpectedCharacterError{Position: pos, Char: c}
}

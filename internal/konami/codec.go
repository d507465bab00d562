// Package konami converts bytes to and from Konami-code token groups and
// implements a toy additive stream cipher on top of that encoding.
//
// A byte is split into four base-4 digits. Each digit is written with its
// own token table (up, down, left/right and b/a tokens) and the group is
// closed with the Start terminator, so groups can be concatenated without
// separators:
//
//	0   -> ^^vv<><>baStart
//	255 -> >>abStart
package konami

import "strings"

// Terminator closes every token group.
const Terminator = "Start"

// Token tables indexed by digit value. The terminator never appears inside
// any of these, which is what makes a group self-delimiting.
var (
	onesTokens       = [4]string{"^^", "^^^", "^", ""}
	foursTokens      = [4]string{"vv", "vvv", "v", ""}
	sixteensTokens   = [4]string{"<><>", "<>", "<<", ">>"}
	sixtyFoursTokens = [4]string{"ba", "bb", "aa", "ab"}
)

// longest possible group: ^^^vvv<><>baStart
const maxGroupLen = 17

// Encode returns the token group for b. Every byte has exactly one encoding.
func Encode(b byte) string {
	d3 := b / 64
	rem := b % 64
	d2 := rem / 16
	rem %= 16
	d1 := rem / 4
	d0 := rem % 4

	var sb strings.Builder
	sb.Grow(maxGroupLen)
	sb.WriteString(onesTokens[d0])
	sb.WriteString(foursTokens[d1])
	sb.WriteString(sixteensTokens[d2])
	sb.WriteString(sixtyFoursTokens[d3])
	sb.WriteString(Terminator)
	return sb.String()
}

// EncodeBytes concatenates the token groups of every byte in data.
func EncodeBytes(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * maxGroupLen)
	for _, b := range data {
		sb.WriteString(Encode(b))
	}
	return sb.String()
}

// Decode parses one or more concatenated token groups and returns the bytes
// they encode, in order. Errors carry the character index (not the byte
// offset) at which parsing failed.
//
// An incomplete group at the end of s is dropped without error, but at least
// one complete group must have been read or ErrEmptyInput is returned.
func Decode(s string) ([]byte, error) {
	var decoded []byte
	state := parseState{kind: stateUp}

	pos := 0
	for _, c := range s {
		next, done, err := state.step(pos, c)
		if err != nil {
			return nil, err
		}
		if done {
			decoded = append(decoded, byte(state.value))
		}
		state = next
		pos++
	}

	if len(decoded) == 0 {
		return nil, ErrEmptyInput
	}
	return decoded, nil
}

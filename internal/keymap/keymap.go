// Package keymap holds the fixed mapping between MIDI pitches and the 21-key
// in-game keyboard layout: the 42 directly playable pitches, the letter each
// pitch is bound to, and the derived phone-style notation.
package keymap

import "strings"

// Supported is the fixed set of directly playable pitches: C1..B3 on the
// z/x/c row, C4..B4 on the a/s/d row and C5..B6 on the q/w/e row.
var Supported = [42]int{
	24, 26, 28, 29, 31, 33, 35, 36, 38, 40, 41, 43, 45, 47, 48, 50, 52, 53, 55, 57, 59, 60, 62, 64,
	65, 67, 69, 71, 72, 74, 76, 77, 79, 81, 83, 84, 86, 88, 89, 91, 93, 95,
}

var letters = map[int]byte{
	24: 'z', 26: 'x', 28: 'c', 29: 'v', 31: 'b', 33: 'n', 35: 'm',
	36: 'z', 38: 'x', 40: 'c', 41: 'v', 43: 'b', 45: 'n', 47: 'm',
	48: 'z', 50: 'x', 52: 'c', 53: 'v', 55: 'b', 57: 'n', 59: 'm',
	60: 'a', 62: 's', 64: 'd', 65: 'f', 67: 'g', 69: 'h', 71: 'j',
	72: 'q', 74: 'w', 76: 'e', 77: 'r', 79: 't', 81: 'y', 83: 'u',
	84: 'q', 86: 'w', 88: 'e', 89: 'r', 91: 't', 93: 'y', 95: 'u',
}

// phoneNotation rewrites letter notation into the numbered notation used by
// phone-layout players: +N for the high octave rows, N for the middle row and
// -N for the low rows.
var phoneNotation = strings.NewReplacer(
	"q", "+1", "w", "+2", "e", "+3", "r", "+4", "t", "+5", "y", "+6", "u", "+7",
	"a", "1", "s", "2", "d", "3", "f", "4", "g", "5", "h", "6", "j", "7",
	"z", "-1", "x", "-2", "c", "-3", "v", "-4", "b", "-5", "n", "-6", "m", "-7",
)

// Playable reports whether pitch is a member of the supported set.
func Playable(pitch int) bool {
	_, ok := letters[pitch]
	return ok
}

// Letter returns the lower-case keyboard letter bound to pitch.
func Letter(pitch int) (byte, bool) {
	b, ok := letters[pitch]
	return b, ok
}

// VirtualKey returns the Windows virtual-key code for the key bound to pitch.
// Letter keys share their code with the upper-case ASCII value.
func VirtualKey(pitch int) (uint16, bool) {
	b, ok := letters[pitch]
	if !ok {
		return 0, false
	}
	return uint16(b - 'a' + 'A'), true
}

// PhoneNotation converts a lower-case letter transcription to phone notation.
func PhoneNotation(s string) string {
	return phoneNotation.Replace(s)
}

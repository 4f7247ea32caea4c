// Package sim is the desktop simulator: a terminal front end that renders
// the framebuffer as a colored grid and feeds keyboard presses into the
// injection queue as raw remote codes. A websocket control surface allows
// scripted injection and state observation.
package sim

import "github.com/drewsortega/bonnaroo-led/internal/remote"

// keyCodes maps terminal key names to raw remote codes. Mirrors the
// hardware remote's layout: -/+ for brightness, arrows for navigation,
// space for play, s for stop, digits for the number pad. The q key quits
// the simulator directly and never reaches the injection queue.
var keyCodes = map[string]uint32{
	"-": remote.CodeVolDown,
	"_": remote.CodeVolDown,
	"+": remote.CodeVolUp,
	"=": remote.CodeVolUp,

	"left":  remote.CodeLeft,
	"right": remote.CodeRight,
	"up":    remote.CodeUp,
	"down":  remote.CodeDown,

	"enter":     remote.CodeEnter,
	" ":         remote.CodePlay,
	"backspace": remote.CodeBack,
	"esc":       remote.CodeBack,
	"s":         remote.CodeStop,

	"0": remote.CodeDigit0,
	"1": remote.CodeDigit1,
	"2": remote.CodeDigit2,
	"3": remote.CodeDigit3,
	"4": remote.CodeDigit4,
	"5": remote.CodeDigit5,
	"6": remote.CodeDigit6,
	"7": remote.CodeDigit7,
	"8": remote.CodeDigit8,
	"9": remote.CodeDigit9,
}

// CodeForKey maps a key name to the raw remote code it injects.
func CodeForKey(key string) (uint32, bool) {
	code, ok := keyCodes[key]
	return code, ok
}

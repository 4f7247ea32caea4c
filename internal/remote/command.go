// Package remote decodes raw 32-bit IR codes into named remote commands
// and defines the receiver abstraction the control loop polls.
//
// The receiver is polymorphic over input sources: the hardware build wires
// an IR demodulator, the simulator wires keyboard and websocket injection.
// All sources emit the same raw-code contract.
package remote

// Command is a logical remote-control button.
type Command int

const (
	CmdUnknown Command = iota
	CmdVolUp
	CmdVolDown
	CmdPlay
	CmdSetup
	CmdUp
	CmdDown
	CmdStop
	CmdLeft
	CmdEnter
	CmdRight
	CmdBack
	CmdDigit0
	CmdDigit1
	CmdDigit2
	CmdDigit3
	CmdDigit4
	CmdDigit5
	CmdDigit6
	CmdDigit7
	CmdDigit8
	CmdDigit9
)

// unknownName is shown when a raw code is not in the button table.
const unknownName = "Unknown Button!"

type buttonEntry struct {
	cmd  Command
	name string
}

// buttonTable maps raw codes to commands and their display names.
var buttonTable = map[uint32]buttonEntry{
	CodeVolDown: {CmdVolDown, "VOL_DOWN"},
	CodePlay:    {CmdPlay, "PLAY"},
	CodeVolUp:   {CmdVolUp, "VOL_UP"},
	CodeSetup:   {CmdSetup, "SETUP"},
	CodeUp:      {CmdUp, "UP"},
	CodeStop:    {CmdStop, "STOP"},
	CodeLeft:    {CmdLeft, "LEFT"},
	CodeEnter:   {CmdEnter, "ENTER"},
	CodeRight:   {CmdRight, "RIGHT"},
	CodeDigit0:  {CmdDigit0, "0"},
	CodeDown:    {CmdDown, "DOWN"},
	CodeBack:    {CmdBack, "BACK"},
	CodeDigit1:  {CmdDigit1, "1"},
	CodeDigit2:  {CmdDigit2, "2"},
	CodeDigit3:  {CmdDigit3, "3"},
	CodeDigit4:  {CmdDigit4, "4"},
	CodeDigit5:  {CmdDigit5, "5"},
	CodeDigit6:  {CmdDigit6, "6"},
	CodeDigit7:  {CmdDigit7, "7"},
	CodeDigit8:  {CmdDigit8, "8"},
	CodeDigit9:  {CmdDigit9, "9"},
}

// Decode maps a raw 32-bit code to a command and its display name.
// Codes outside the button table decode to CmdUnknown. Pure lookup,
// no side effects.
func Decode(raw uint32) (Command, string) {
	e, ok := buttonTable[raw]
	if !ok {
		return CmdUnknown, unknownName
	}
	return e.cmd, e.name
}

// CodeForName returns the raw code for a button display name, as accepted
// by the simulator's injection surface.
func CodeForName(name string) (uint32, bool) {
	for raw, e := range buttonTable {
		if e.name == name {
			return raw, true
		}
	}
	return 0, false
}

// String returns the display name of the command.
func (c Command) String() string {
	for _, e := range buttonTable {
		if e.cmd == c {
			return e.name
		}
	}
	return unknownName
}

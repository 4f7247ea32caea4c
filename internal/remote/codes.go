package remote

// Raw NEC codes emitted by the 21-key IR remote shipped with the panel.
//
// Remote layout:
//
//	VOL_DOWN   PLAY    VOL_UP
//	SETUP      UP      STOP
//	LEFT       ENTER   RIGHT
//	0          DOWN    BACK
//	1          2       3
//	4          5       6
//	7          8       9
const (
	CodeVolDown uint32 = 0xFF00BF00
	CodePlay    uint32 = 0xFE01BF00
	CodeVolUp   uint32 = 0xFD02BF00
	CodeSetup   uint32 = 0xFB04BF00
	CodeUp      uint32 = 0xFA05BF00
	CodeStop    uint32 = 0xF906BF00
	CodeLeft    uint32 = 0xF708BF00
	CodeEnter   uint32 = 0xF609BF00
	CodeRight   uint32 = 0xF50ABF00
	CodeDigit0  uint32 = 0xF30CBF00
	CodeDown    uint32 = 0xF20DBF00
	CodeBack    uint32 = 0xF10EBF00
	CodeDigit1  uint32 = 0xEF10BF00
	CodeDigit2  uint32 = 0xEE11BF00
	CodeDigit3  uint32 = 0xED12BF00
	CodeDigit4  uint32 = 0xEB14BF00
	CodeDigit5  uint32 = 0xEA15BF00
	CodeDigit6  uint32 = 0xE916BF00
	CodeDigit7  uint32 = 0xE718BF00
	CodeDigit8  uint32 = 0xE619BF00
	CodeDigit9  uint32 = 0xE51ABF00
)

// CodeQuit is a sentinel reserved by input sources to request shutdown.
// It is not a remote button: sources filter it out before it can reach
// Decode, so the decoder never has to special-case it.
const CodeQuit uint32 = 0xFFFFFFFF

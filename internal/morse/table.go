// internal/morse/table.go
// Package morse holds the code tables and timing model for the trainer.
package morse

// Code tables as (character, pattern) pairs. Kept as ordered slices rather
// than maps so the cheat sheet renders in the traditional order.
type Code struct {
	Char    rune
	Pattern string
}

// Letters is the ITU alphabet.
var Letters = []Code{
	{'A', ".-"},
	{'B', "-..."},
	{'C', "-.-."},
	{'D', "-.."},
	{'E', "."},
	{'F', "..-."},
	{'G', "--."},
	{'H', "...."},
	{'I', ".."},
	{'J', ".---"},
	{'K', "-.-"},
	{'L', ".-.."},
	{'M', "--"},
	{'N', "-."},
	{'O', "---"},
	{'P', ".--."},
	{'Q', "--.-"},
	{'R', ".-."},
	{'S', "..."},
	{'T', "-"},
	{'U', "..-"},
	{'V', "...-"},
	{'W', ".--"},
	{'X', "-..-"},
	{'Y', "-.--"},
	{'Z', "--.."},
}

// Numbers is the ITU digit set.
var Numbers = []Code{
	{'1', ".----"},
	{'2', "..---"},
	{'3', "...--"},
	{'4', "....-"},
	{'5', "....."},
	{'6', "-...."},
	{'7', "--..."},
	{'8', "---.."},
	{'9', "----."},
	{'0', "-----"},
}

// Signs is the punctuation subset the trainer teaches.
var Signs = []Code{
	{'.', ".-.-.-"},
	{'!', "-.-.--"},
	{'\'', ".----."},
	{',', "--..--"},
	{'?', "..--.."},
	{'/', "-..-."},
	{'-', "-....-"},
	{'(', "-.--.-"},
	{')', "-.--."},
	{'@', ".--.-."},
	{'&', ".-..."},
}

// Prosign is a procedural signal with its own pattern. Prosigns are checked
// in addition to the character tables at decode time; some patterns overlap
// a punctuation mark on purpose (e.g. <KN> and the closing parenthesis).
type Prosign struct {
	Pattern string
	// Text is what gets committed to the transcript when the prosign is
	// recognized, explanatory suffix included.
	Text string
}

// Prosigns in recognition order.
var Prosigns = []Prosign{
	{".-.-", "<AA>\n"},
	{".-.-.", "<AR> (End of Message)"},
	{"-.-.-", "<CT> (Start Copying)"},
	{"-..---", "<DO> (Change to WABUN Code)"},
	{"-.-.-.", "<KA> (Invitation to Transmit)"},
	{"-.--.", "<KN> (Invitation to Transmit to Specific Station)"},
	{"...-.-", "<SK> (End of Contact)"},
	{"...-.", "<SN> (Understood)"},
	{"...---...", "SOS (Distress Signal)"},
	{"........", "<ERR> (Erroneous Transmission)"},
}

var (
	byPattern map[string]rune
	byChar    map[rune]string
)

func init() {
	byPattern = make(map[string]rune, len(Letters)+len(Numbers)+len(Signs))
	byChar = make(map[rune]string, len(Letters)+len(Numbers)+len(Signs))
	for _, table := range [][]Code{Letters, Numbers, Signs} {
		for _, c := range table {
			byPattern[c.Pattern] = c.Char
			byChar[c.Char] = c.Pattern
		}
	}
}

// Codes returns the combined character table (letters, digits, signs) in
// cheat-sheet order.
func Codes() []Code {
	out := make([]Code, 0, len(Letters)+len(Numbers)+len(Signs))
	out = append(out, Letters...)
	out = append(out, Numbers...)
	out = append(out, Signs...)
	return out
}

// DecodeChar resolves a dot/dash pattern to its character.
// Returns false if the pattern is not in the combined character table.
func DecodeChar(pattern string) (rune, bool) {
	c, ok := byPattern[pattern]
	return c, ok
}

// DecodeProsign resolves a dot/dash pattern to a prosign rendering.
func DecodeProsign(pattern string) (string, bool) {
	for _, p := range Prosigns {
		if p.Pattern == pattern {
			return p.Text, true
		}
	}
	return "", false
}

// EncodeChar returns the pattern for a character. Lowercase letters are
// folded to uppercase; unknown characters return false.
func EncodeChar(c rune) (string, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	p, ok := byChar[c]
	return p, ok
}

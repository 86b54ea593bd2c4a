// internal/trainer/groups.go
package trainer

import (
	"math/rand"
	"strings"
	"time"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

// Charset returns the characters code groups are drawn from. Unknown names
// fall back to letters.
func Charset(name string) []rune {
	var codes []morse.Code
	switch name {
	case "digits":
		codes = morse.Numbers
	case "signs":
		codes = morse.Signs
	case "mixed":
		codes = append(codes, morse.Letters...)
		codes = append(codes, morse.Numbers...)
		codes = append(codes, morse.Signs...)
	default:
		codes = morse.Letters
	}
	runes := make([]rune, len(codes))
	for i, c := range codes {
		runes[i] = c.Char
	}
	return runes
}

// Generator produces randomized code groups for copy practice.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded with the current time.
func NewGenerator() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Groups draws count groups of size characters each from charset.
func (g *Generator) Groups(charset []rune, count, size int) []string {
	result := make([]string, 0, count)
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.Reset()
		for j := 0; j < size; j++ {
			sb.WriteRune(charset[g.rnd.Intn(len(charset))])
		}
		result = append(result, sb.String())
	}
	return result
}

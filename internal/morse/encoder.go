// internal/morse/encoder.go
package morse

import "time"

// Segment is one step of a playback sequence: a tone of the given duration,
// or silence when Tone is false.
type Segment struct {
	Tone     bool
	Duration time.Duration
}

// Encode converts text into the timed tone/silence sequence that transmits
// it at the given Timing. Elements within a character are separated by the
// element gap, characters by the character gap, and words (any run of
// spaces) by the word gap. Unknown characters are skipped without error.
//
// The result is a plain slice: re-encoding the same text with the same
// Timing yields an identical sequence, so a drill can be replayed exactly.
func Encode(text string, t Timing) []Segment {
	var segs []Segment
	pendingGap := time.Duration(0)

	for _, c := range text {
		if c == ' ' {
			if len(segs) > 0 {
				pendingGap = t.WordGap
			}
			continue
		}
		pattern, ok := EncodeChar(c)
		if !ok {
			continue
		}
		if pendingGap > 0 {
			segs = append(segs, Segment{Tone: false, Duration: pendingGap})
		}
		for i, el := range pattern {
			if i > 0 {
				segs = append(segs, Segment{Tone: false, Duration: t.ElementGap})
			}
			d := t.Dit
			if el == '-' {
				d = t.Dah
			}
			segs = append(segs, Segment{Tone: true, Duration: d})
		}
		pendingGap = t.CharGap
	}
	return segs
}

// Duration sums the total play time of a segment sequence.
func Duration(segs []Segment) time.Duration {
	var total time.Duration
	for _, s := range segs {
		total += s.Duration
	}
	return total
}

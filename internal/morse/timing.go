// internal/morse/timing.go
package morse

import "time"

// Morse timing ratios (ITU standard). All durations in a transmission are
// small integer multiples of the dit.
const (
	// DahDitRatio is the ratio of dah duration to dit duration (ITU: 3:1)
	DahDitRatio = 3
	// ElementGapRatio is the gap between elements within a character (ITU: 1:1)
	ElementGapRatio = 1
	// CharGapRatio is the gap between characters (ITU: 3:1)
	CharGapRatio = 3
	// WordGapRatio is the gap between words (ITU: 7:1)
	WordGapRatio = 7

	// DitsPerWord is the standard word "PARIS" = 50 dit units
	DitsPerWord = 50
	// MillisecondsPerMinute is used for WPM calculations
	MillisecondsPerMinute = 60000
)

// WPM bounds supported by the trainer. Values outside are clamped, not
// rejected.
const (
	MinWPM = 1
	MaxWPM = 40
)

// ClampWPM forces wpm into the supported range.
func ClampWPM(wpm int) int {
	if wpm < MinWPM {
		return MinWPM
	}
	if wpm > MaxWPM {
		return MaxWPM
	}
	return wpm
}

// DitDuration converts words-per-minute to the base unit duration.
//
// PARIS is the calibration word: one word = 50 dits, so
// dit_ms = 60000 / (50 * wpm) = 1200 / wpm, rounded up to a whole
// millisecond. The result is always positive since wpm is clamped to at
// least MinWPM.
func DitDuration(wpm int) time.Duration {
	wpm = ClampWPM(wpm)
	ms := (MillisecondsPerMinute/DitsPerWord + wpm - 1) / wpm // ceil(1200/wpm)
	return time.Duration(ms) * time.Millisecond
}

// Timing carries the derived durations for one speed setting.
type Timing struct {
	Dit        time.Duration
	Dah        time.Duration
	ElementGap time.Duration
	CharGap    time.Duration
	WordGap    time.Duration
}

// NewTiming derives all element durations from wpm. With farnsworth set,
// inter-character and inter-word gaps are doubled while element speed stays
// constant, giving the learner more time to copy.
func NewTiming(wpm int, farnsworth bool) Timing {
	dit := DitDuration(wpm)
	t := Timing{
		Dit:        dit,
		Dah:        DahDitRatio * dit,
		ElementGap: ElementGapRatio * dit,
		CharGap:    CharGapRatio * dit,
		WordGap:    WordGapRatio * dit,
	}
	if farnsworth {
		t.CharGap *= 2
		t.WordGap *= 2
	}
	return t
}

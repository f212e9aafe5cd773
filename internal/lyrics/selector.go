package lyrics

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinLineLength     = 10
	MinLongLineLength = 30
	MaxLineLength     = 200
)

var lineBreakRe = regexp.MustCompile(`\r\n|\r|\n`)

// Selector picks one presentable line out of a lyric body.
type Selector struct {
	// intN returns a uniform value in [0, n). Must be safe for concurrent use.
	intN func(n int) int
}

func NewSelector() Selector {
	return Selector{intN: rand.Intn}
}

// NewSelectorWithRand is used by tests to make the draw deterministic.
func NewSelectorWithRand(intN func(n int) int) Selector {
	return Selector{intN: intN}
}

// PickLine is NewSelector().Pick.
func PickLine(text string, preferLong bool) (string, bool) {
	return NewSelector().Pick(text, preferLong)
}

// Pick returns a random line whose length is within [min, MaxLineLength],
// min being MinLongLineLength when preferLong is set. When no line qualifies
// it picks from every non-empty line instead. ok is false only when the text
// has no non-empty line at all.
func (s Selector) Pick(text string, preferLong bool) (string, bool) {
	if text == "" {
		return "", false
	}

	lines := SplitLines(text)
	if len(lines) == 0 {
		return "", false
	}

	minLen := MinLineLength
	if preferLong {
		minLen = MinLongLineLength
	}

	pool := make([]string, 0, len(lines))
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n >= minLen && n <= MaxLineLength {
			pool = append(pool, line)
		}
	}
	if len(pool) == 0 {
		pool = lines
	}

	return pool[s.draw(len(pool))], true
}

func (s Selector) draw(n int) int {
	if s.intN == nil {
		return rand.Intn(n)
	}
	return s.intN(n)
}

// SplitLines splits on any line-break sequence and returns the trimmed,
// non-empty lines in order.
func SplitLines(text string) []string {
	var lines []string
	for _, raw := range lineBreakRe.Split(text, -1) {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

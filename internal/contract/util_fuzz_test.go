package contract

import "testing"

// FuzzParseDelay fuzzes the delay parser with arbitrary strings. The parser
// must never panic and must never return a negative duration for inputs
// without an explicit sign.
func FuzzParseDelay(f *testing.F) {
	seeds := []string{"2s", "500ms", "3 seconds", "1 hour", "", "0", "soon", "9999999999999h", "-5s"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseDelay(s)
	})
}

// FuzzParseBoolString fuzzes the boolean parser with arbitrary strings.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "TRUE", "0", "", "maybe"} {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}

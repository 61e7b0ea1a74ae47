package agg

import (
	"strings"
	"testing"
)

// FuzzParseClassRows feeds arbitrary text through the CSV parser. The parser
// may reject input but must never panic, and any accepted input must
// summarize cleanly.
func FuzzParseClassRows(f *testing.F) {
	f.Add("class,cbo\nA,1\n")
	f.Add("class,cbo\nA,\nB,abc\n")
	f.Add("")
	f.Add("\uFEFFclass,CBO\nA,3\n")
	f.Add("class,cbo,cbo\nA,1,2\n")
	f.Add("\"class\",\"cbo\"\n\"A,B\",7\n")
	f.Add("class,cbo\nA,NaN\nB,+Inf\nC,-Inf\n")
	f.Add("no header just text")

	f.Fuzz(func(t *testing.T, input string) {
		res, err := ParseClassRows(strings.NewReader(input))
		if err != nil {
			return
		}
		rows := SummarizeRepo("fuzz/fuzz", res)
		if len(rows) != 7 {
			t.Fatalf("expected 7 summary rows, got %d", len(rows))
		}
	})
}

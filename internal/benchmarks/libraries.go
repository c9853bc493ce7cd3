package benchmarks

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/textpatch"
)

// Impl adapts a diff implementation for comparison. Delta returns the edit script in the
// diff-match-patch delta format, which both implementations can produce, so that outputs are
// directly comparable.
type Impl struct {
	Name  string
	Delta func(x, y string) string
}

var Impls = []Impl{
	{
		Name: "textpatch",
		Delta: func(x, y string) string {
			return textpatch.ToDelta(textpatch.Diff(x, y))
		},
	},
	{
		Name: "textpatch-optimal",
		Delta: func(x, y string) string {
			return textpatch.ToDelta(textpatch.Diff(x, y, textpatch.Optimal()))
		},
	},
	{
		Name: "sergi",
		Delta: func(x, y string) string {
			dmp := diffmatchpatch.New()
			return dmp.DiffToDelta(dmp.DiffMain(x, y, true))
		},
	},
}

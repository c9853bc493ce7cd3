// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package edits contains the internal edit script representation that's used by the diff engine
// and is then aliased into the user facing API.
//
// An edit script is an ordered sequence of edits that losslessly encodes a transformation between
// two texts: concatenating the text of all non-insert edits reconstructs the source text and
// concatenating the text of all non-delete edits reconstructs the target text. After
// [CleanupMerge], no two adjacent edits share the same operation and no edit is empty.
package edits

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Equal  Op = iota // The text is common to both source and target.
	Delete           // The text is deleted from the source.
	Insert           // The text is inserted from the target.
)

// Edit describes a single tagged span of an edit script.
type Edit struct {
	Op   Op
	Text string
}

// Text1 reconstructs the source text from a script by concatenating all equalities and deletions.
func Text1(diffs []Edit) string {
	var n int
	for _, d := range diffs {
		if d.Op != Insert {
			n += len(d.Text)
		}
	}
	b := make([]byte, 0, n)
	for _, d := range diffs {
		if d.Op != Insert {
			b = append(b, d.Text...)
		}
	}
	return string(b)
}

// Text2 reconstructs the target text from a script by concatenating all equalities and insertions.
func Text2(diffs []Edit) string {
	var n int
	for _, d := range diffs {
		if d.Op != Delete {
			n += len(d.Text)
		}
	}
	b := make([]byte, 0, n)
	for _, d := range diffs {
		if d.Op != Delete {
			b = append(b, d.Text...)
		}
	}
	return string(b)
}

// XIndex maps loc, an offset in source text coordinates, to the equivalent offset in target text
// coordinates. If loc falls inside a deleted span, the deletion collapses to a single point and
// the offset just after the preceding equality is returned.
func XIndex(diffs []Edit, loc int) int {
	chars1, chars2 := 0, 0
	lastChars1, lastChars2 := 0, 0
	var lastDiff *Edit
	for i := range diffs {
		d := &diffs[i]
		if d.Op != Insert {
			chars1 += len(d.Text)
		}
		if d.Op != Delete {
			chars2 += len(d.Text)
		}
		if chars1 > loc {
			lastDiff = d
			break
		}
		lastChars1 = chars1
		lastChars2 = chars2
	}
	if lastDiff != nil && lastDiff.Op == Delete {
		// The location was deleted.
		return lastChars2
	}
	return lastChars2 + (loc - lastChars1)
}

// Levenshtein computes the Levenshtein distance of a script: the number of inserted, deleted, or
// substituted characters. A paired deletion and insertion counts as one substitution per
// character, not two, so each maximal run of non-equal edits contributes the maximum of its
// inserted and deleted character counts.
func Levenshtein(diffs []Edit) int {
	levenshtein := 0
	insertions, deletions := 0, 0
	for _, d := range diffs {
		switch d.Op {
		case Insert:
			insertions += len(d.Text)
		case Delete:
			deletions += len(d.Text)
		case Equal:
			levenshtein += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return levenshtein + max(insertions, deletions)
}

// Splice replaces diffs[i:i+amount] with elems and returns the resulting script.
func Splice(diffs []Edit, i, amount int, elems ...Edit) []Edit {
	out := make([]Edit, 0, len(diffs)-amount+len(elems))
	out = append(out, diffs[:i]...)
	out = append(out, elems...)
	out = append(out, diffs[i+amount:]...)
	return out
}

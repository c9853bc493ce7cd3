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

// Package myers implements a diff algorithm based on E. Myers, "An O(ND) Difference Algorithm and
// Its Variations" [1], bisecting the edit graph from both ends at once so that only the middle
// snake of each subproblem needs to be found before recursing.
//
// Before running the O(ND) search proper, a number of structural shortcuts are tried that resolve
// common inputs in linear time: identical texts, common prefixes and suffixes, one text being
// empty or contained in the other, and a half match where both texts share a substring of at
// least half the longer text's length. When a deadline is set, texts above a size threshold are
// additionally diffed line by line first and only the changed regions are re-diffed character by
// character.
//
// The search works on runes rather than bytes so that the synthetic rune texts produced by the
// line encoding can flow through unchanged and multi-byte UTF-8 sequences are never split.
//
// [1]: https://doi.org/10.1007/BF01840446
package myers

import (
	"time"

	"znkr.io/textpatch/internal/edits"
	"znkr.io/textpatch/internal/textutil"
)

// lineModeThreshold is the text size in runes above which the line-by-line speedup kicks in.
const lineModeThreshold = 100

// Diff computes an edit script transforming text1 into text2.
//
// If deadline is non-zero, the search is cut short when the deadline passes and a valid but
// possibly non-minimal script is returned. A zero deadline guarantees a minimal script and
// disables the speedups that trade optimality for time (half match and lineMode).
//
// If lineMode is set, texts larger than lineModeThreshold are first diffed line by line and the
// changed regions are then re-diffed character by character.
func Diff(text1, text2 string, lineMode bool, deadline time.Time) []edits.Edit {
	if text1 == text2 {
		if text1 == "" {
			return nil
		}
		return []edits.Edit{{Op: edits.Equal, Text: text1}}
	}
	return diffRunes([]rune(text1), []rune(text2), lineMode, deadline)
}

func diffRunes(runes1, runes2 []rune, lineMode bool, deadline time.Time) []edits.Edit {
	if runesEqual(runes1, runes2) {
		if len(runes1) == 0 {
			return nil
		}
		return []edits.Edit{{Op: edits.Equal, Text: string(runes1)}}
	}

	// Trim off any common prefix and suffix, they don't take part in the search.
	n := textutil.CommonPrefixRunes(runes1, runes2)
	prefix := runes1[:n]
	runes1, runes2 = runes1[n:], runes2[n:]
	n = textutil.CommonSuffixRunes(runes1, runes2)
	suffix := runes1[len(runes1)-n:]
	runes1, runes2 = runes1[:len(runes1)-n], runes2[:len(runes2)-n]

	diffs := compute(runes1, runes2, lineMode, deadline)

	if len(prefix) > 0 {
		diffs = append([]edits.Edit{{Op: edits.Equal, Text: string(prefix)}}, diffs...)
	}
	if len(suffix) > 0 {
		diffs = append(diffs, edits.Edit{Op: edits.Equal, Text: string(suffix)})
	}
	return edits.CleanupMerge(diffs)
}

// compute finds the differences between two rune slices that share no common prefix or suffix.
func compute(runes1, runes2 []rune, lineMode bool, deadline time.Time) []edits.Edit {
	switch {
	case len(runes1) == 0:
		return []edits.Edit{{Op: edits.Insert, Text: string(runes2)}}
	case len(runes2) == 0:
		return []edits.Edit{{Op: edits.Delete, Text: string(runes1)}}
	}

	long, short := runes1, runes2
	op := edits.Delete // the long text carries extra text
	if len(long) < len(short) {
		long, short = short, long
		op = edits.Insert
	}
	if i := runesIndex(long, short, 0); i != -1 {
		// The shorter text is a substring of the longer one.
		return []edits.Edit{
			{Op: op, Text: string(long[:i])},
			{Op: edits.Equal, Text: string(short)},
			{Op: op, Text: string(long[i+len(short):])},
		}
	}
	if len(short) == 1 {
		// Single rune with no match in the other text: no equalities are possible.
		return []edits.Edit{
			{Op: edits.Delete, Text: string(runes1)},
			{Op: edits.Insert, Text: string(runes2)},
		}
	}

	// Check whether the texts share a substring which is at least half the length of the longer
	// text. This speedup can produce non-minimal scripts, so it's only used under a deadline.
	if !deadline.IsZero() {
		if hm := halfMatch(runes1, runes2); hm != nil {
			diffsA := diffRunes(hm.prefix1, hm.prefix2, lineMode, deadline)
			diffsB := diffRunes(hm.suffix1, hm.suffix2, lineMode, deadline)
			diffsA = append(diffsA, edits.Edit{Op: edits.Equal, Text: string(hm.common)})
			return append(diffsA, diffsB...)
		}
	}

	if lineMode && len(runes1) > lineModeThreshold && len(runes2) > lineModeThreshold {
		return diffLineMode(runes1, runes2, deadline)
	}

	return bisect(runes1, runes2, deadline)
}

// diffLineMode diffs the texts line by line, then re-diffs the changed regions character by
// character. This is a significant speedup for large texts at the expense of optimality.
func diffLineMode(runes1, runes2 []rune, deadline time.Time) []edits.Edit {
	encoded1, encoded2, lines := textutil.LinesToRunes(string(runes1), string(runes2))

	diffs := diffRunes(encoded1, encoded2, false, deadline)

	// Hydrate the line codes back into full lines of text.
	for i, d := range diffs {
		var text []byte
		for _, r := range d.Text {
			text = append(text, lines[textutil.LineIndex(r)]...)
		}
		diffs[i].Text = string(text)
	}

	diffs = edits.CleanupSemantic(diffs)

	// Rediff each replacement block character by character for accuracy.
	diffs = append(diffs, edits.Edit{Op: edits.Equal, Text: ""}) // dummy sentinel
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert string
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case edits.Insert:
			countInsert++
			textInsert += diffs[pointer].Text
		case edits.Delete:
			countDelete++
			textDelete += diffs[pointer].Text
		case edits.Equal:
			if countDelete >= 1 && countInsert >= 1 {
				sub := diffRunes([]rune(textDelete), []rune(textInsert), false, deadline)
				x := pointer - countDelete - countInsert
				diffs = edits.Splice(diffs, x, countDelete+countInsert, sub...)
				pointer = x + len(sub)
			}
			countDelete, countInsert = 0, 0
			textDelete, textInsert = "", ""
		}
		pointer++
	}
	return diffs[:len(diffs)-1] // remove the dummy entry
}

// bisect finds the middle snake of the edit graph, splits the problem there, and recursively
// diffs the two halves. This is the main O(ND) loop of the algorithm.
func bisect(runes1, runes2 []rune, deadline time.Time) []edits.Edit {
	maxD := (len(runes1) + len(runes2) + 1) / 2
	vOffset := maxD
	vLength := 2*maxD + 2
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0
	delta := len(runes1) - len(runes2)
	// If the total number of runes is odd, then the front path will collide with the reverse path.
	front := delta%2 != 0
	// Offsets for start and end of k loop. Prevents mapping of space beyond the grid.
	k1start, k1end := 0, 0
	k2start, k2end := 0, 0
	for d := 0; d < maxD; d++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}

		// Walk the front path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < len(runes1) && y1 < len(runes2) && runes1[x1] == runes2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > len(runes1):
				k1end += 2 // ran off the right of the graph
			case y1 > len(runes2):
				k1start += 2 // ran off the bottom of the graph
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto top-left coordinate system.
					x2 := len(runes1) - v2[k2Offset]
					if x1 >= x2 {
						return bisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}

		// Walk the reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < len(runes1) && y2 < len(runes2) &&
				runes1[len(runes1)-x2-1] == runes2[len(runes2)-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > len(runes1):
				k2end += 2 // ran off the left of the graph
			case y2 > len(runes2):
				k2start += 2 // ran off the top of the graph
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// Mirror x2 onto top-left coordinate system.
					x2 = len(runes1) - x2
					if x1 >= x2 {
						return bisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
	}
	// The number of diffs equals the number of runes, no commonality at all. This is also the
	// fallback when the deadline passed before the paths met.
	return []edits.Edit{
		{Op: edits.Delete, Text: string(runes1)},
		{Op: edits.Insert, Text: string(runes2)},
	}
}

// bisectSplit splits the problem at the middle snake coordinates (x, y) and diffs both halves.
func bisectSplit(runes1, runes2 []rune, x, y int, deadline time.Time) []edits.Edit {
	diffs := diffRunes(runes1[:x], runes2[:y], false, deadline)
	diffsB := diffRunes(runes1[x:], runes2[y:], false, deadline)
	return append(diffs, diffsB...)
}

// halfMatchResult describes a split of two texts around a shared substring that covers at least
// half of the longer text.
type halfMatchResult struct {
	prefix1, suffix1 []rune // parts of the first text before and after the common middle
	prefix2, suffix2 []rune // parts of the second text before and after the common middle
	common           []rune
}

// halfMatch checks whether the two texts share a substring which is at least half the length of
// the longer text. Returns nil if no such substring exists.
func halfMatch(runes1, runes2 []rune) *halfMatchResult {
	long, short := runes1, runes2
	if len(long) < len(short) {
		long, short = short, long
	}
	if len(long) < 4 || len(short)*2 < len(long) {
		return nil // pointless
	}

	// Check whether the second quarter or the start of the second half of the longer text is a
	// substring of the shorter text.
	hm1 := halfMatchAt(long, short, (len(long)+3)/4)
	hm2 := halfMatchAt(long, short, (len(long)+1)/2)
	var hm *halfMatchResult
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1.common) > len(hm2.common):
		hm = hm1
	default:
		hm = hm2
	}

	if len(runes1) < len(runes2) {
		// The halves were computed with swapped texts, swap them back.
		hm = &halfMatchResult{
			prefix1: hm.prefix2,
			suffix1: hm.suffix2,
			prefix2: hm.prefix1,
			suffix2: hm.suffix1,
			common:  hm.common,
		}
	}
	return hm
}

// halfMatchAt checks whether a substring of short exists within long such that the substring is
// at least half the length of long, seeded at long[i:].
func halfMatchAt(long, short []rune, i int) *halfMatchResult {
	seed := long[i : i+len(long)/4]
	var best halfMatchResult
	for j := runesIndex(short, seed, 0); j != -1; j = runesIndex(short, seed, j+1) {
		prefixLength := textutil.CommonPrefixRunes(long[i:], short[j:])
		suffixLength := textutil.CommonSuffixRunes(long[:i], short[:j])
		if len(best.common) < suffixLength+prefixLength {
			common := make([]rune, 0, suffixLength+prefixLength)
			common = append(common, short[j-suffixLength:j]...)
			common = append(common, short[j:j+prefixLength]...)
			best = halfMatchResult{
				prefix1: long[:i-suffixLength],
				suffix1: long[i+prefixLength:],
				prefix2: short[:j-suffixLength],
				suffix2: short[j+prefixLength:],
				common:  common,
			}
		}
	}
	if len(best.common)*2 < len(long) {
		return nil
	}
	return &best
}

// runesIndex returns the index of the first occurrence of pattern in text at or after start, or
// -1 if pattern is not present.
func runesIndex(text, pattern []rune, start int) int {
	for i := start; i+len(pattern) <= len(text); i++ {
		found := true
		for j := range pattern {
			if text[i+j] != pattern[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

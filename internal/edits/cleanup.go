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

package edits

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"znkr.io/textpatch/internal/textutil"
)

// CleanupMerge normalizes a script: it coalesces adjacent edits with the same operation, factors
// common prefixes and suffixes of delete/insert runs into the neighboring equalities, drops empty
// edits, and replaces each maximal run of deletions and insertions with at most one deletion
// followed by at most one insertion. A second pass shifts single edits surrounded by equalities
// sideways when that lets the two equalities merge (e.g. A<ins>BA</ins>C -> <ins>AB</ins>AC);
// when any shift happens the merge is repeated.
//
// CleanupMerge is idempotent.
func CleanupMerge(diffs []Edit) []Edit {
	diffs = append(diffs, Edit{Equal, ""}) // dummy sentinel
	pointer := 0
	countDelete, countInsert := 0, 0
	var textDelete, textInsert string
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case Insert:
			countInsert++
			textInsert += diffs[pointer].Text
			pointer++
		case Delete:
			countDelete++
			textDelete += diffs[pointer].Text
			pointer++
		case Equal:
			// Upon reaching an equality, check for prior redundancies.
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					// Factor out any common prefix.
					if n := textutil.CommonPrefix(textInsert, textDelete); n != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Op == Equal {
							diffs[x-1].Text += textInsert[:n]
						} else {
							diffs = Splice(diffs, 0, 0, Edit{Equal, textInsert[:n]})
							pointer++
						}
						textInsert = textInsert[n:]
						textDelete = textDelete[n:]
					}
					// Factor out any common suffix.
					if n := textutil.CommonSuffix(textInsert, textDelete); n != 0 {
						diffs[pointer].Text = textInsert[len(textInsert)-n:] + diffs[pointer].Text
						textInsert = textInsert[:len(textInsert)-n]
						textDelete = textDelete[:len(textDelete)-n]
					}
				}
				// Replace the run with the merged records, deletion first.
				x := pointer - countDelete - countInsert
				var merged []Edit
				if len(textDelete) != 0 {
					merged = append(merged, Edit{Delete, textDelete})
				}
				if len(textInsert) != 0 {
					merged = append(merged, Edit{Insert, textInsert})
				}
				diffs = Splice(diffs, x, countDelete+countInsert, merged...)
				pointer = x + len(merged) + 1
			} else if pointer != 0 && diffs[pointer-1].Op == Equal {
				// Merge this equality with the previous one.
				diffs[pointer-1].Text += diffs[pointer].Text
				diffs = Splice(diffs, pointer, 1)
			} else {
				pointer++
			}
			countDelete, countInsert = 0, 0
			textDelete, textInsert = "", ""
		}
	}
	if diffs[len(diffs)-1].Text == "" {
		diffs = diffs[:len(diffs)-1] // remove the dummy entry
	}

	// Second pass: look for single edits surrounded on both sides by equalities which can be
	// shifted sideways to eliminate an equality.
	changes := false
	for pointer := 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Op != Equal || diffs[pointer+1].Op != Equal {
			continue
		}
		if strings.HasSuffix(diffs[pointer].Text, diffs[pointer-1].Text) {
			// Shift the edit over the previous equality.
			diffs[pointer].Text = diffs[pointer-1].Text +
				diffs[pointer].Text[:len(diffs[pointer].Text)-len(diffs[pointer-1].Text)]
			diffs[pointer+1].Text = diffs[pointer-1].Text + diffs[pointer+1].Text
			diffs = Splice(diffs, pointer-1, 1)
			changes = true
		} else if strings.HasPrefix(diffs[pointer].Text, diffs[pointer+1].Text) {
			// Shift the edit over the next equality.
			diffs[pointer-1].Text += diffs[pointer+1].Text
			diffs[pointer].Text = diffs[pointer].Text[len(diffs[pointer+1].Text):] + diffs[pointer+1].Text
			diffs = Splice(diffs, pointer+1, 1)
			changes = true
		}
	}
	// If shifts were made, the diff needs reordering and another shift sweep.
	if changes {
		diffs = CleanupMerge(diffs)
	}
	return diffs
}

// CleanupSemantic reduces the number of edits by eliminating semantically trivial equalities: an
// equality is eliminated when it is no longer than the edits on both sides of it. Afterwards it
// runs [CleanupSemanticLossless] and extracts overlaps between adjacent deletions and insertions
// into equalities (e.g. <del>abcxxx</del><ins>xxxdef</ins> -> <del>abc</del>xxx<ins>def</ins>).
func CleanupSemantic(diffs []Edit) []Edit {
	changes := false
	var equalities []int // stack of indices where equalities are found
	lastEquality := ""   // always equal to diffs[equalities[len-1]].Text
	pointer := 0
	// Number of characters changed before and after the last equality.
	lengthInsertions1, lengthDeletions1 := 0, 0
	lengthInsertions2, lengthDeletions2 := 0, 0
	for pointer < len(diffs) {
		if diffs[pointer].Op == Equal {
			equalities = append(equalities, pointer)
			lengthInsertions1, lengthDeletions1 = lengthInsertions2, lengthDeletions2
			lengthInsertions2, lengthDeletions2 = 0, 0
			lastEquality = diffs[pointer].Text
		} else {
			if diffs[pointer].Op == Insert {
				lengthInsertions2 += len(diffs[pointer].Text)
			} else {
				lengthDeletions2 += len(diffs[pointer].Text)
			}
			// Eliminate an equality that is smaller or equal to the edits on both sides of it.
			if lastEquality != "" &&
				len(lastEquality) <= max(lengthInsertions1, lengthDeletions1) &&
				len(lastEquality) <= max(lengthInsertions2, lengthDeletions2) {
				insPoint := equalities[len(equalities)-1]
				diffs = Splice(diffs, insPoint, 1,
					Edit{Delete, lastEquality},
					Edit{Insert, lastEquality})
				// Throw away the equality we just deleted and the previous one, it needs to be
				// reevaluated.
				equalities = equalities[:len(equalities)-1]
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				pointer = -1
				if len(equalities) > 0 {
					pointer = equalities[len(equalities)-1]
				}
				lengthInsertions1, lengthDeletions1 = 0, 0
				lengthInsertions2, lengthDeletions2 = 0, 0
				lastEquality = ""
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = CleanupMerge(diffs)
	}
	diffs = CleanupSemanticLossless(diffs)

	// Find overlaps between deletions and insertions. Only extract an overlap if it is as big as
	// the edit ahead or behind it.
	pointer = 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Op == Delete && diffs[pointer].Op == Insert {
			deletion := diffs[pointer-1].Text
			insertion := diffs[pointer].Text
			overlap1 := textutil.CommonOverlap(deletion, insertion)
			overlap2 := textutil.CommonOverlap(insertion, deletion)
			if overlap1 >= overlap2 {
				if float64(overlap1) >= float64(len(deletion))/2 ||
					float64(overlap1) >= float64(len(insertion))/2 {
					diffs = Splice(diffs, pointer, 0, Edit{Equal, insertion[:overlap1]})
					diffs[pointer-1].Text = deletion[:len(deletion)-overlap1]
					diffs[pointer+1].Text = insertion[overlap1:]
					pointer++
				}
			} else {
				if float64(overlap2) >= float64(len(deletion))/2 ||
					float64(overlap2) >= float64(len(insertion))/2 {
					// Reverse overlap: swap and trim the surrounding edits.
					diffs = Splice(diffs, pointer, 0, Edit{Equal, deletion[:overlap2]})
					diffs[pointer-1] = Edit{Insert, insertion[:len(insertion)-overlap2]}
					diffs[pointer+1] = Edit{Delete, deletion[overlap2:]}
					pointer++
				}
			}
			pointer++
		}
		pointer++
	}
	return diffs
}

// CleanupSemanticLossless slides single edits surrounded on both sides by equalities sideways to
// align edit boundaries to logical boundaries, e.g. The c<ins>at c</ins>ame -> The <ins>cat
// </ins>came. The transformation does not change the reconstructed texts.
func CleanupSemanticLossless(diffs []Edit) []Edit {
	// Intentionally ignore the first and last element (they don't need checking).
	for pointer := 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Op != Equal || diffs[pointer+1].Op != Equal {
			continue
		}
		// This is a single edit surrounded by equalities.
		equality1 := diffs[pointer-1].Text
		edit := diffs[pointer].Text
		equality2 := diffs[pointer+1].Text

		// First, shift the edit as far left as possible.
		if n := textutil.CommonSuffix(equality1, edit); n > 0 {
			common := edit[len(edit)-n:]
			equality1 = equality1[:len(equality1)-n]
			edit = common + edit[:len(edit)-n]
			equality2 = common + equality2
		}

		// Second, step character by character right, looking for the best fit.
		bestEquality1, bestEdit, bestEquality2 := equality1, edit, equality2
		bestScore := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)
		for len(edit) != 0 && len(equality2) != 0 {
			_, size := utf8.DecodeRuneInString(edit)
			if size > len(equality2) || edit[:size] != equality2[:size] {
				break
			}
			equality1 += edit[:size]
			edit = edit[size:] + equality2[:size]
			equality2 = equality2[size:]
			score := boundaryScore(equality1, edit) + boundaryScore(edit, equality2)
			// The >= encourages trailing rather than leading whitespace on edits.
			if score >= bestScore {
				bestScore = score
				bestEquality1, bestEdit, bestEquality2 = equality1, edit, equality2
			}
		}

		if diffs[pointer-1].Text != bestEquality1 {
			// We have an improvement, save it back to the diff.
			if len(bestEquality1) != 0 {
				diffs[pointer-1].Text = bestEquality1
			} else {
				diffs = Splice(diffs, pointer-1, 1)
				pointer--
			}
			diffs[pointer].Text = bestEdit
			if len(bestEquality2) != 0 {
				diffs[pointer+1].Text = bestEquality2
			} else {
				diffs = Splice(diffs, pointer+1, 1)
				pointer--
			}
		}
	}
	return diffs
}

var (
	blankLineEnd   = regexp.MustCompile(`\n\r?\n$`)
	blankLineStart = regexp.MustCompile(`^\r?\n\r?\n`)
)

// boundaryScore rates the quality of the split between one and two on a scale from 6 (best,
// a text edge) to 0 (worst, splitting a word). Whitespace is better than non-alphanumeric
// punctuation, line breaks are better than whitespace, and blank lines are better still. The
// scoring looks at a single character on each side of the split.
func boundaryScore(one, two string) int {
	if len(one) == 0 || len(two) == 0 {
		return 6 // edges are the best
	}
	char1, _ := utf8.DecodeLastRuneInString(one)
	char2, _ := utf8.DecodeRuneInString(two)
	nonAlphaNumeric1 := !isAlphaNumeric(char1)
	nonAlphaNumeric2 := !isAlphaNumeric(char2)
	whitespace1 := nonAlphaNumeric1 && unicode.IsSpace(char1)
	whitespace2 := nonAlphaNumeric2 && unicode.IsSpace(char2)
	lineBreak1 := whitespace1 && (char1 == '\n' || char1 == '\r')
	lineBreak2 := whitespace2 && (char2 == '\n' || char2 == '\r')
	blankLine1 := lineBreak1 && blankLineEnd.MatchString(one)
	blankLine2 := lineBreak2 && blankLineStart.MatchString(two)

	switch {
	case blankLine1 || blankLine2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		return 3 // end of sentence
	case whitespace1 || whitespace2:
		return 2
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		return 1
	}
	return 0
}

func isAlphaNumeric(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// CleanupEfficiency reduces the number of edits by eliminating operationally trivial equalities:
// equalities shorter than editCost that sit between edit operations when keeping them separate
// costs more than merging.
func CleanupEfficiency(diffs []Edit, editCost int) []Edit {
	changes := false
	var equalities []int // stack of indices where equalities are found
	lastEquality := ""   // always equal to diffs[equalities[len-1]].Text
	pointer := 0
	preIns := false  // is there an insertion before the last equality
	preDel := false  // is there a deletion before the last equality
	postIns := false // is there an insertion after the last equality
	postDel := false // is there a deletion after the last equality
	for pointer < len(diffs) {
		if diffs[pointer].Op == Equal {
			if len(diffs[pointer].Text) < editCost && (postIns || postDel) {
				// Candidate found.
				equalities = append(equalities, pointer)
				preIns, preDel = postIns, postDel
				lastEquality = diffs[pointer].Text
			} else {
				// Not a candidate, and can never become one.
				equalities = equalities[:0]
				lastEquality = ""
			}
			postIns, postDel = false, false
		} else {
			if diffs[pointer].Op == Delete {
				postDel = true
			} else {
				postIns = true
			}
			// Five types to be split:
			// <ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
			// <ins>A</ins>X<ins>C</ins><del>D</del>
			// <ins>A</ins><del>B</del>X<ins>C</ins>
			// <del>A</del>X<ins>C</ins><del>D</del>
			// <ins>A</ins><del>B</del>X<del>C</del>
			sumPres := 0
			for _, b := range [...]bool{preIns, preDel, postIns, postDel} {
				if b {
					sumPres++
				}
			}
			if lastEquality != "" &&
				((preIns && preDel && postIns && postDel) ||
					(len(lastEquality) < editCost/2 && sumPres == 3)) {
				insPoint := equalities[len(equalities)-1]
				diffs = Splice(diffs, insPoint, 1,
					Edit{Delete, lastEquality},
					Edit{Insert, lastEquality})
				equalities = equalities[:len(equalities)-1] // throw away the equality we just deleted
				lastEquality = ""
				if preIns && preDel {
					// No changes made which could affect previous entry, keep going.
					postIns, postDel = true, true
					equalities = equalities[:0]
				} else {
					if len(equalities) > 0 {
						equalities = equalities[:len(equalities)-1] // throw away the previous equality
					}
					pointer = -1
					if len(equalities) > 0 {
						pointer = equalities[len(equalities)-1]
					}
					postIns, postDel = false, false
				}
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = CleanupMerge(diffs)
	}
	return diffs
}

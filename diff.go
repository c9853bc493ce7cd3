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

package textpatch

import (
	"time"

	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/internal/edits"
	"znkr.io/textpatch/internal/myers"
)

// Op describes an edit operation of an [Edit] span.
type Op = edits.Op

const (
	// Equal indicates that a span is identical in both texts.
	Equal = edits.Equal
	// Delete indicates that a span was removed from the first text.
	Delete = edits.Delete
	// Insert indicates that a span was added by the second text.
	Insert = edits.Insert
)

// Edit describes a single span of an edit script: a stretch of text that is equal in both texts,
// deleted from the first, or inserted by the second.
//
// An edit script losslessly encodes both texts: concatenating the text of all non-insert edits
// reconstructs the first text (see [Text1]) and concatenating the text of all non-delete edits
// reconstructs the second (see [Text2]).
type Edit = edits.Edit

// Diff computes an edit script transforming text1 into text2. The result is normalized so that no
// two adjacent edits share the same operation and no edit is empty, but it is otherwise tuned for
// minimality rather than readability; see [CleanupSemantic] and [CleanupEfficiency].
//
// By default, the search is bounded by a deadline and texts above a size threshold are diffed line
// by line first, both of which trade optimality for speed. Supported options: [Timeout],
// [EditCost], [Optimal].
func Diff(text1, text2 string, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.Timeout|config.EditCost|config.Optimal)
	return diffWith(cfg, text1, text2)
}

func diffWith(cfg config.Config, text1, text2 string) []Edit {
	return myers.Diff(text1, text2, !cfg.Optimal, deadline(cfg))
}

// deadline converts the configured timeout into an absolute deadline. The zero time means no
// limit and selects a guaranteed-minimal search.
func deadline(cfg config.Config) time.Time {
	if cfg.Optimal || cfg.Timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(cfg.Timeout)
}

// Text1 reconstructs the first text from an edit script by concatenating all equalities and
// deletions.
func Text1(diffs []Edit) string {
	return edits.Text1(diffs)
}

// Text2 reconstructs the second text from an edit script by concatenating all equalities and
// insertions.
func Text2(diffs []Edit) string {
	return edits.Text2(diffs)
}

// XIndex maps loc, a byte offset into the first text, to the equivalent offset in the second
// text. If loc falls inside a deleted span, the offset just after the preceding equality is
// returned.
func XIndex(diffs []Edit, loc int) int {
	return edits.XIndex(diffs, loc)
}

// Levenshtein computes the Levenshtein distance of an edit script: the number of inserted,
// deleted, or substituted bytes.
func Levenshtein(diffs []Edit) int {
	return edits.Levenshtein(diffs)
}

// CleanupMerge normalizes an edit script: it coalesces adjacent edits with the same operation,
// drops empty edits, orders each deletion before the insertion it pairs with, and factors text
// common to a paired deletion and insertion into the neighboring equalities. Scripts returned by
// [Diff] are already normalized; CleanupMerge is useful after editing a script by hand.
func CleanupMerge(diffs []Edit) []Edit {
	return edits.CleanupMerge(diffs)
}

// CleanupSemantic rewrites an edit script to be more human readable by eliminating short
// equalities that fragment the changes and by aligning edit boundaries to word, sentence, and
// line boundaries where that is possible without changing the reconstructed texts.
//
// For example, diffing "mouse" against "sofas" yields the minimal script
// <del>m</del><ins>s</ins>o<del>u</del><ins>fa</ins>s<del>e</del>, which CleanupSemantic rewrites
// to <del>mouse</del><ins>sofas</ins>.
func CleanupSemantic(diffs []Edit) []Edit {
	return edits.CleanupSemantic(diffs)
}

// CleanupSemanticLossless slides edit boundaries to align them with word, sentence, and line
// boundaries without changing the reconstructed texts or the total edit size. [CleanupSemantic]
// already includes this pass; it is exposed separately for scripts that must not grow.
func CleanupSemanticLossless(diffs []Edit) []Edit {
	return edits.CleanupSemanticLossless(diffs)
}

// CleanupEfficiency rewrites an edit script to use fewer, larger edits by eliminating equalities
// that are shorter than the cost of the edit operations they separate. This is useful when the
// per-edit overhead of downstream processing (for example the delta encoding) outweighs the
// redundant text. Supported options: [EditCost].
func CleanupEfficiency(diffs []Edit, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.EditCost)
	return edits.CleanupEfficiency(diffs, cfg.EditCost)
}

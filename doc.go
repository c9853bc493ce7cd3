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

// Package textpatch provides functions to synchronize plain text: computing differences between
// two texts, locating a pattern in text that no longer matches exactly, and applying a set of
// changes to text that has drifted from the text the changes were made against.
//
// # Diffing
//
// [Diff] compares two texts and returns an edit script, a sequence of [Edit] spans tagged [Equal],
// [Delete], or [Insert] that transforms the first text into the second:
//
//	diffs := textpatch.Diff("the quick brown fox", "the quick red fox")
//
// Scripts produced by Diff are normalized but tuned for minimality, not readability. The cleanup
// functions rewrite a script for human consumption ([CleanupSemantic]) or for machine efficiency
// ([CleanupEfficiency]) without changing the texts it reconstructs.
//
// # Fuzzy matching
//
// [Match] locates a pattern in a text near an expected location, tolerating errors in both the
// content and the location of the match. It returns -1 when nothing scores below the configured
// [MatchThreshold].
//
// # Patching
//
// [Make] converts the differences between two texts into a list of [Patch] hunks that carry
// context around each change. [Apply] applies them to a text that may have changed in the
// meantime, using fuzzy matching to relocate each hunk and reporting per-hunk success:
//
//	patches := textpatch.Make(text1, text2)
//	result, applied := textpatch.Apply(patches, text3)
//
// Patches and edit scripts have compact textual encodings ([ToText], [FromText], [ToDelta],
// [FromDelta]) for storage and transmission.
//
// All functions operate on UTF-8 text without normalization or grapheme awareness: offsets and
// lengths are byte offsets, comparisons are code point comparisons. Inputs must be valid UTF-8,
// invalid sequences are treated as U+FFFD replacement characters.
//
// The behavior of this package is modeled after Neil Fraser's diff-match-patch library and is
// compatible with its wire formats.
package textpatch

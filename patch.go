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
	"slices"
	"strings"

	"znkr.io/textpatch/internal/bitap"
	"znkr.io/textpatch/internal/config"
	"znkr.io/textpatch/internal/edits"
	"znkr.io/textpatch/internal/myers"
)

// Patch describes one hunk of changes: an edit script for a limited region of text together with
// the region's byte offsets and lengths in both the pre- and post-image. The edit script starts
// and ends with enough equal context to relocate the hunk in text that has drifted from the
// pre-image.
//
// Unlike unified diff hunks, consecutive patches have rolling coordinates: each patch's offsets
// assume all previous patches have already been applied.
type Patch struct {
	Edits   []Edit // edit script covering the patched region, including context
	Start1  int    // offset of the region in the pre-image
	Start2  int    // offset of the region in the post-image
	Length1 int    // length of the region in the pre-image
	Length2 int    // length of the region in the post-image
}

// Make computes the difference between text1 and text2 and converts it into a list of patches
// that can be applied to text1 (or to text that has drifted from it, see [Apply]) to produce
// text2.
//
// The diff is cleaned up for readability before patching, so the patches may not be minimal.
// Supported options: [Timeout], [EditCost], [Margin], [Optimal].
func Make(text1, text2 string, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.Timeout|config.EditCost|config.Margin|config.Optimal)
	diffs := diffWith(cfg, text1, text2)
	if len(diffs) > 2 {
		diffs = edits.CleanupSemantic(diffs)
		diffs = edits.CleanupEfficiency(diffs, cfg.EditCost)
	}
	return makeFromDiff(cfg, text1, diffs)
}

// MakeFromEdits converts an existing edit script into a list of patches, reconstructing the
// pre-image from the script itself. Supported options: [Margin].
func MakeFromEdits(diffs []Edit, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.Margin)
	return makeFromDiff(cfg, edits.Text1(diffs), diffs)
}

// MakeFromDiff converts an existing edit script and its pre-image text1 into a list of patches.
// Providing the pre-image explicitly avoids reconstructing it when it's already at hand.
// Supported options: [Margin].
func MakeFromDiff(text1 string, diffs []Edit, opts ...Option) []Patch {
	cfg := config.FromOptions(opts, config.Margin)
	return makeFromDiff(cfg, text1, diffs)
}

func makeFromDiff(cfg config.Config, text1 string, diffs []Edit) []Patch {
	if len(diffs) == 0 {
		return nil // no diffs, no patches
	}

	var patches []Patch
	var patch Patch
	charCount1 := 0 // number of bytes into the text1 string
	charCount2 := 0 // number of bytes into the text2 string
	// Start with text1 (prepatchText) and apply the diffs until we arrive at text2
	// (postpatchText). We recreate the patches one by one to determine context info.
	prepatchText := text1
	postpatchText := text1
	for i, d := range diffs {
		if len(patch.Edits) == 0 && d.Op != Equal {
			// A new patch starts here.
			patch.Start1 = charCount1
			patch.Start2 = charCount2
		}

		switch d.Op {
		case Insert:
			patch.Edits = append(patch.Edits, d)
			patch.Length2 += len(d.Text)
			postpatchText = postpatchText[:charCount2] + d.Text + postpatchText[charCount2:]
		case Delete:
			patch.Edits = append(patch.Edits, d)
			patch.Length1 += len(d.Text)
			postpatchText = postpatchText[:charCount2] + postpatchText[charCount2+len(d.Text):]
		case Equal:
			if len(d.Text) <= 2*cfg.Margin && len(patch.Edits) != 0 && i != len(diffs)-1 {
				// Small equality inside a patch.
				patch.Edits = append(patch.Edits, d)
				patch.Length1 += len(d.Text)
				patch.Length2 += len(d.Text)
			}
			if len(d.Text) >= 2*cfg.Margin && len(patch.Edits) != 0 {
				// Time for a new patch.
				patch = addContext(patch, prepatchText, cfg.Margin)
				patches = append(patches, patch)
				patch = Patch{}
				// Unlike unified diffs, our patch lists have a rolling context. Update prepatch
				// text and position to reflect the application of the just completed patch.
				prepatchText = postpatchText
				charCount1 = charCount2
			}
		}

		if d.Op != Insert {
			charCount1 += len(d.Text)
		}
		if d.Op != Delete {
			charCount2 += len(d.Text)
		}
	}
	// Pick up the leftover patch if not empty.
	if len(patch.Edits) != 0 {
		patch = addContext(patch, prepatchText, cfg.Margin)
		patches = append(patches, patch)
	}
	return patches
}

// addContext grows the equal context around patch until the patch's pre-image is unique in text,
// bounded so that the pre-image stays matchable by the fuzzy matcher even after padding.
func addContext(patch Patch, text string, margin int) Patch {
	if len(text) == 0 {
		return patch
	}

	pattern := text[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0
	// Look for the first and last matches of pattern in text. If two different matches are found,
	// increase the pattern length.
	for strings.Index(text, pattern) != strings.LastIndex(text, pattern) &&
		len(pattern) < bitap.MaxBits-2*margin {
		padding += margin
		pattern = text[max(0, patch.Start2-padding):min(len(text), patch.Start2+patch.Length1+padding)]
	}
	// Add one chunk for good luck.
	padding += margin

	// Add the prefix.
	prefix := text[max(0, patch.Start2-padding):patch.Start2]
	if len(prefix) != 0 {
		patch.Edits = edits.Splice(patch.Edits, 0, 0, Edit{Op: Equal, Text: prefix})
	}
	// Add the suffix.
	suffix := text[patch.Start2+patch.Length1 : min(len(text), patch.Start2+patch.Length1+padding)]
	if len(suffix) != 0 {
		patch.Edits = append(patch.Edits, Edit{Op: Equal, Text: suffix})
	}

	// Roll back the start points and extend the lengths.
	patch.Start1 -= len(prefix)
	patch.Start2 -= len(prefix)
	patch.Length1 += len(prefix) + len(suffix)
	patch.Length2 += len(prefix) + len(suffix)
	return patch
}

// deepCopy returns a copy of patches that shares no mutable state with the input.
func deepCopy(patches []Patch) []Patch {
	out := slices.Clone(patches)
	for i := range out {
		out[i].Edits = slices.Clone(out[i].Edits)
	}
	return out
}

// Apply applies a list of patches to text, which may have drifted from the pre-image the patches
// were made against: each hunk is relocated with fuzzy matching and repaired with a local diff
// when the text at the matched location differs from the expected pre-image.
//
// It returns the patched text together with one flag per input patch reporting whether the patch
// could be applied. Content mismatches are never an error: patches that can't be located, or
// whose matched region is too corrupted to trust (see [DeleteThreshold]), are skipped and
// reported as false while the remaining patches still apply. The input patches are not modified.
//
// Supported options: [MatchThreshold], [MatchDistance], [DeleteThreshold], [Margin].
func Apply(patches []Patch, text string, opts ...Option) (string, []bool) {
	cfg := config.FromOptions(opts,
		config.MatchThreshold|config.MatchDistance|config.DeleteThreshold|config.Margin)
	if len(patches) == 0 {
		return text, nil
	}

	patches = deepCopy(patches) // don't modify the caller's patches

	// Pad the text on both ends so that edge patches have full context to match against, and cut
	// oversized patches down to the fuzzy matcher's capacity.
	nullPadding := addPadding(patches, cfg.Margin)
	text = nullPadding + text + nullPadding
	patches = splitMax(patches, cfg.Margin)

	applied := make([]bool, len(patches))
	// delta keeps track of the offset between the expected and actual location of the previous
	// patch. If there are patches expected at positions 10 and 20, but the first patch was found
	// at 12, delta is 2 and the second patch has an effective expected position of 22.
	delta := 0
	for x, patch := range patches {
		expectedLoc := patch.Start2 + delta
		text1 := edits.Text1(patch.Edits)
		startLoc := -1
		endLoc := -1
		if len(text1) > bitap.MaxBits {
			// splitMax only produces an oversized pre-image for a monster delete. Match its first
			// and last chunks separately and require consistent locations.
			startLoc = matchWith(cfg, text, text1[:bitap.MaxBits], expectedLoc)
			if startLoc != -1 {
				endLoc = matchWith(cfg, text, text1[len(text1)-bitap.MaxBits:],
					expectedLoc+len(text1)-bitap.MaxBits)
				if endLoc == -1 || startLoc >= endLoc {
					// Can't find valid trailing context, drop this patch.
					startLoc = -1
				}
			}
		} else {
			startLoc = matchWith(cfg, text, text1, expectedLoc)
		}
		if startLoc == -1 {
			// No match found. Subtract the delta for this failed patch from subsequent patches.
			applied[x] = false
			delta -= patch.Length2 - patch.Length1
			continue
		}

		// Found a match.
		applied[x] = true
		delta = startLoc - expectedLoc
		var text2 string
		if endLoc == -1 {
			text2 = text[startLoc:min(startLoc+len(text1), len(text))]
		} else {
			text2 = text[startLoc:min(endLoc+bitap.MaxBits, len(text))]
		}
		if text1 == text2 {
			// Perfect match, just shove the replacement text in.
			text = text[:startLoc] + edits.Text2(patch.Edits) + text[startLoc+len(text1):]
			continue
		}

		// Imperfect match. Run a diff between the expected and the actual text to get a
		// framework of equivalent indices.
		diffs := myers.Diff(text1, text2, false, deadline(cfg))
		if len(text1) > bitap.MaxBits &&
			float64(edits.Levenshtein(diffs))/float64(len(text1)) > cfg.DeleteThreshold {
			// The end points match, but the content is unacceptably bad.
			applied[x] = false
			continue
		}
		diffs = edits.CleanupSemanticLossless(diffs)
		index1 := 0
		for _, d := range patch.Edits {
			if d.Op != Equal {
				index2 := edits.XIndex(diffs, index1)
				switch d.Op {
				case Insert:
					text = text[:startLoc+index2] + d.Text + text[startLoc+index2:]
				case Delete:
					text = text[:startLoc+index2] +
						text[startLoc+edits.XIndex(diffs, index1+len(d.Text)):]
				}
			}
			if d.Op != Delete {
				index1 += len(d.Text)
			}
		}
	}

	// Strip the padding off.
	text = text[len(nullPadding) : len(text)-len(nullPadding)]
	return text, applied
}

// addPadding pads the first and last patch with margin bytes of non-printable sentinel characters
// (byte values 1..margin) and shifts all coordinates accordingly, so that patches at the very
// edges of the text have context to match against. It returns the padding string; the text must
// be padded with it on both ends before matching and stripped afterwards.
func addPadding(patches []Patch, margin int) string {
	padding := make([]byte, margin)
	for i := range padding {
		padding[i] = byte(i + 1)
	}
	nullPadding := string(padding)

	// Bump all the patches forward.
	for i := range patches {
		patches[i].Start1 += margin
		patches[i].Start2 += margin
	}

	// Add some padding on start of first diff.
	first := &patches[0]
	if len(first.Edits) == 0 || first.Edits[0].Op != Equal {
		// Add nullPadding equality.
		first.Edits = edits.Splice(first.Edits, 0, 0, Edit{Op: Equal, Text: nullPadding})
		first.Start1 -= margin // should be 0
		first.Start2 -= margin // should be 0
		first.Length1 += margin
		first.Length2 += margin
	} else if margin > len(first.Edits[0].Text) {
		// Grow first equality.
		extra := margin - len(first.Edits[0].Text)
		first.Edits[0].Text = nullPadding[len(first.Edits[0].Text):] + first.Edits[0].Text
		first.Start1 -= extra
		first.Start2 -= extra
		first.Length1 += extra
		first.Length2 += extra
	}

	// Add some padding on end of last diff.
	last := &patches[len(patches)-1]
	if len(last.Edits) == 0 || last.Edits[len(last.Edits)-1].Op != Equal {
		// Add nullPadding equality.
		last.Edits = append(last.Edits, Edit{Op: Equal, Text: nullPadding})
		last.Length1 += margin
		last.Length2 += margin
	} else if margin > len(last.Edits[len(last.Edits)-1].Text) {
		// Grow last equality.
		extra := margin - len(last.Edits[len(last.Edits)-1].Text)
		last.Edits[len(last.Edits)-1].Text += nullPadding[:extra]
		last.Length1 += extra
		last.Length2 += extra
	}

	return nullPadding
}

// splitMax cuts any patch whose pre-image exceeds the fuzzy matcher's capacity into a chain of
// smaller patches, each carrying up to margin bytes of sliding context from its predecessor. A
// single deletion longer than twice the capacity passes through as one oversized chunk; Apply
// matches its end points separately.
func splitMax(patches []Patch, margin int) []Patch {
	patchSize := bitap.MaxBits
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		bigpatch := patches[x]
		// Remove the big old patch.
		patches = slices.Delete(patches, x, x+1)
		x--
		start1 := bigpatch.Start1
		start2 := bigpatch.Start2
		precontext := ""
		for len(bigpatch.Edits) != 0 {
			// Create one of several smaller patches.
			patch := Patch{
				Start1: start1 - len(precontext),
				Start2: start2 - len(precontext),
			}
			empty := true
			if len(precontext) != 0 {
				patch.Length1 = len(precontext)
				patch.Length2 = len(precontext)
				patch.Edits = append(patch.Edits, Edit{Op: Equal, Text: precontext})
			}
			for len(bigpatch.Edits) != 0 && patch.Length1 < patchSize-margin {
				d := bigpatch.Edits[0]
				switch {
				case d.Op == Insert:
					// Insertions are harmless.
					patch.Length2 += len(d.Text)
					start2 += len(d.Text)
					patch.Edits = append(patch.Edits, d)
					bigpatch.Edits = bigpatch.Edits[1:]
					empty = false
				case d.Op == Delete && len(patch.Edits) == 1 &&
					patch.Edits[0].Op == Equal && len(d.Text) > 2*patchSize:
					// This is a large deletion. Let it pass in one chunk.
					patch.Length1 += len(d.Text)
					start1 += len(d.Text)
					patch.Edits = append(patch.Edits, d)
					bigpatch.Edits = bigpatch.Edits[1:]
					empty = false
				default:
					// Deletion or equality. Only take as much as we can stomach.
					text := d.Text[:min(len(d.Text), patchSize-patch.Length1-margin)]
					patch.Length1 += len(text)
					start1 += len(text)
					if d.Op == Equal {
						patch.Length2 += len(text)
						start2 += len(text)
					} else {
						empty = false
					}
					patch.Edits = append(patch.Edits, Edit{Op: d.Op, Text: text})
					if text == bigpatch.Edits[0].Text {
						bigpatch.Edits = bigpatch.Edits[1:]
					} else {
						bigpatch.Edits[0].Text = bigpatch.Edits[0].Text[len(text):]
					}
				}
			}
			// Compute the head context for the next patch.
			precontext = edits.Text2(patch.Edits)
			precontext = precontext[max(0, len(precontext)-margin):]
			// Append the end context for this patch.
			postcontext := edits.Text1(bigpatch.Edits)
			if len(postcontext) > margin {
				postcontext = postcontext[:margin]
			}
			if len(postcontext) != 0 {
				patch.Length1 += len(postcontext)
				patch.Length2 += len(postcontext)
				if len(patch.Edits) != 0 && patch.Edits[len(patch.Edits)-1].Op == Equal {
					patch.Edits[len(patch.Edits)-1].Text += postcontext
				} else {
					patch.Edits = append(patch.Edits, Edit{Op: Equal, Text: postcontext})
				}
			}
			if !empty {
				x++
				patches = slices.Insert(patches, x, patch)
			}
		}
	}
	return patches
}

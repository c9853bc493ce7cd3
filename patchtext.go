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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadPatch is returned by [FromText] when a patch text is malformed. Use [errors.Is] to test
// for it.
var ErrBadPatch = errors.New("invalid patch")

// String renders the patch in a unified-diff-like text format: a "@@ -start1,length1
// +start2,length2 @@" header with 1-based offsets followed by one line per edit, prefixed ' ',
// '-', or '+' and percent-encoded so that a patch line never contains a raw line break.
func (p Patch) String() string {
	var sb strings.Builder
	sb.WriteString("@@ -")
	sb.WriteString(coords(p.Start1, p.Length1))
	sb.WriteString(" +")
	sb.WriteString(coords(p.Start2, p.Length2))
	sb.WriteString(" @@\n")
	for _, d := range p.Edits {
		switch d.Op {
		case Insert:
			sb.WriteByte('+')
		case Delete:
			sb.WriteByte('-')
		case Equal:
			sb.WriteByte(' ')
		}
		sb.WriteString(escape(d.Text))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// coords formats an offset/length pair for a patch header. Following unified diff conventions,
// offsets are 1-based, a length of 1 is implicit, and a length of 0 leaves the offset 0-based.
func coords(start, length int) string {
	switch length {
	case 0:
		return strconv.Itoa(start) + ",0"
	case 1:
		return strconv.Itoa(start + 1)
	default:
		return strconv.Itoa(start+1) + "," + strconv.Itoa(length)
	}
}

// ToText serializes a list of patches by concatenating their [Patch.String] representations. The
// inverse operation is [FromText].
func ToText(patches []Patch) string {
	var sb strings.Builder
	for _, p := range patches {
		sb.WriteString(p.String())
	}
	return sb.String()
}

var patchHeader = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// FromText parses a list of patches from the textual representation produced by [ToText]. It
// returns [ErrBadPatch] wrapped with details when a header doesn't parse, a body line starts with
// an unknown prefix, or percent-decoding fails.
func FromText(text string) ([]Patch, error) {
	var patches []Patch
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) {
		if lines[i] == "" {
			i++
			continue
		}
		m := patchHeader.FindStringSubmatch(lines[i])
		if m == nil {
			return nil, fmt.Errorf("%w: invalid patch header %q", ErrBadPatch, lines[i])
		}
		var patch Patch
		patch.Start1, patch.Length1 = parseCoords(m[1], m[2])
		patch.Start2, patch.Length2 = parseCoords(m[3], m[4])
		i++

		for i < len(lines) {
			if lines[i] == "" {
				i++
				continue
			}
			sign := lines[i][0]
			if sign == '@' {
				break // start of next patch
			}
			line, err := unescape(lines[i][1:])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid escaping in %q: %v", ErrBadPatch, lines[i], err)
			}
			switch sign {
			case '-':
				patch.Edits = append(patch.Edits, Edit{Op: Delete, Text: line})
			case '+':
				patch.Edits = append(patch.Edits, Edit{Op: Insert, Text: line})
			case ' ':
				patch.Edits = append(patch.Edits, Edit{Op: Equal, Text: line})
			default:
				return nil, fmt.Errorf("%w: invalid line prefix %q in %q", ErrBadPatch, string(sign), lines[i])
			}
			i++
		}
		patches = append(patches, patch)
	}
	return patches, nil
}

// parseCoords is the inverse of [coords]. The inputs are pre-validated by the header pattern.
func parseCoords(startDigits, lengthDigits string) (start, length int) {
	start, _ = strconv.Atoi(startDigits)
	switch lengthDigits {
	case "":
		start--
		length = 1
	case "0":
		length = 0
	default:
		start--
		length, _ = strconv.Atoi(lengthDigits)
	}
	return start, length
}

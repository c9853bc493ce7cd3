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

// Package textutil contains text comparison primitives shared by the diff and patch engines.
//
// All comparison is code-unit based: there is no Unicode normalization and no grapheme awareness.
// String results are byte lengths aligned to rune boundaries so that multi-byte runes are never
// split between an edit and its neighbors.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// CommonPrefix returns the length in bytes of the common prefix of a and b. The returned length
// never splits a multi-byte rune.
func CommonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		_, size := utf8.DecodeRuneInString(a[n:])
		if n+size > len(b) || a[n:n+size] != b[n:n+size] {
			break
		}
		n += size
	}
	return n
}

// CommonSuffix returns the length in bytes of the common suffix of a and b. The returned length
// never splits a multi-byte rune.
func CommonSuffix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		_, size := utf8.DecodeLastRuneInString(a[:len(a)-n])
		if n+size > len(b) || a[len(a)-n-size:len(a)-n] != b[len(b)-n-size:len(b)-n] {
			break
		}
		n += size
	}
	return n
}

// CommonPrefixRunes returns the number of runes common to the start of a and b.
func CommonPrefixRunes(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// CommonSuffixRunes returns the number of runes common to the end of a and b.
func CommonSuffixRunes(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return i - 1
		}
	}
	return n
}

// CommonOverlap returns the length in bytes of the longest suffix of a that is a prefix of b.
//
// The comparison is purely byte based: visually similar but differently encoded text (for example
// a precomposed ligature vs. its constituent letters) does not overlap.
func CommonOverlap(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Truncate the longer string: only the last len(b) bytes of a and the first len(a) bytes of b
	// can take part in an overlap.
	if len(a) > len(b) {
		a = a[len(a)-len(b):]
	} else if len(a) < len(b) {
		b = b[:len(a)]
	}
	n := len(a)
	// Quick check for the worst case.
	if a == b {
		return n
	}

	// Start by looking for a single character match and increase length until no match is found.
	best, length := 0, 1
	for {
		pattern := a[n-length:]
		found := strings.Index(b, pattern)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || a[n-length:] == b[:length] {
			best = length
			length++
		}
	}
}

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

package textutil

import "strings"

// Line codes are runes so that texts with more than 256 distinct lines can be encoded. Codes in
// the surrogate range are not valid Unicode scalar values and would not survive a conversion to
// string, so the code space skips over it.
const (
	surrogateMin  = 0xD800
	surrogateSize = 0x800
)

// LineCode returns the rune encoding line table index i.
func LineCode(i int) rune {
	if i >= surrogateMin {
		i += surrogateSize
	}
	return rune(i)
}

// LineIndex returns the line table index encoded by r. It is the inverse of [LineCode].
func LineIndex(r rune) int {
	i := int(r)
	if i >= surrogateMin+surrogateSize {
		i -= surrogateSize
	}
	return i
}

// LinesToRunes encodes each line of text1 and text2 as a single rune, assigning one code per
// distinct line content across both texts. It returns the two encoded texts and the line table
// mapping codes back to lines; index 0 is reserved and never used.
//
// A line is the text up to and including its terminating '\n', or the final partial line.
func LinesToRunes(text1, text2 string) (runes1, runes2 []rune, lines []string) {
	lines = []string{""} // index 0 is a sentinel, so no code maps to it
	codes := map[string]rune{}

	munge := func(text string) []rune {
		var out []rune
		for len(text) > 0 {
			end := strings.IndexByte(text, '\n')
			if end == -1 {
				end = len(text) - 1
			}
			line := text[:end+1]
			text = text[end+1:]
			code, ok := codes[line]
			if !ok {
				lines = append(lines, line)
				code = LineCode(len(lines) - 1)
				codes[line] = code
			}
			out = append(out, code)
		}
		return out
	}

	runes1 = munge(text1)
	runes2 = munge(text2)
	return runes1, runes2, lines
}

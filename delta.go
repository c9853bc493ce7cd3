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
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrBadDelta is returned by [FromDelta] when a delta is malformed or doesn't fit the source
// text. Use [errors.Is] to test for it.
var ErrBadDelta = errors.New("invalid delta")

// ToDelta encodes an edit script as a compact delta string relative to the first text: keeps and
// deletions are run lengths in Unicode code points ("=4", "-7"), insertions carry their text
// percent-encoded ("+ed"). Tokens are separated by tabs. For example, turning "jumps over the
// lazy" into "jumped over a lazy" encodes as "=4\t-1\t+ed\t=6\t-3\t+a\t=5".
//
// The inverse operation is [FromDelta].
func ToDelta(diffs []Edit) string {
	var sb strings.Builder
	for i, d := range diffs {
		if i > 0 {
			sb.WriteByte('\t')
		}
		switch d.Op {
		case Insert:
			sb.WriteByte('+')
			// Escape literal '+' so that decoders which translate '+' to space can't corrupt the
			// payload.
			sb.WriteString(strings.ReplaceAll(escape(d.Text), "+", "%2B"))
		case Delete:
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(utf8.RuneCountInString(d.Text)))
		case Equal:
			sb.WriteByte('=')
			sb.WriteString(strconv.Itoa(utf8.RuneCountInString(d.Text)))
		}
	}
	return sb.String()
}

// FromDelta reconstructs an edit script from a delta string and the source text the delta was
// encoded against. It returns [ErrBadDelta] wrapped with details when the delta contains a
// malformed token or its run lengths don't consume text1 exactly.
func FromDelta(text1, delta string) ([]Edit, error) {
	runes := []rune(text1)
	var diffs []Edit
	i := 0 // offset in runes
	for token := range strings.SplitSeq(delta, "\t") {
		if token == "" {
			// Blank tokens are ok (from a trailing \t).
			continue
		}
		// Each token begins with a one character operation.
		param := token[1:]
		switch token[0] {
		case '+':
			text, err := unescape(param)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid escaping in %q: %v", ErrBadDelta, param, err)
			}
			diffs = append(diffs, Edit{Op: Insert, Text: text})
		case '-', '=':
			n, err := strconv.Atoi(param)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid number in %q: %v", ErrBadDelta, token, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: negative number in %q", ErrBadDelta, token)
			}
			if i+n > len(runes) {
				return nil, fmt.Errorf("%w: delta length larger than source text (%d runes)", ErrBadDelta, len(runes))
			}
			op := Equal
			if token[0] == '-' {
				op = Delete
			}
			diffs = append(diffs, Edit{Op: op, Text: string(runes[i : i+n])})
			i += n
		default:
			return nil, fmt.Errorf("%w: unknown operation in %q", ErrBadDelta, token)
		}
	}
	if i != len(runes) {
		return nil, fmt.Errorf("%w: delta consumed %d of %d source runes", ErrBadDelta, i, len(runes))
	}
	return diffs, nil
}

// escape percent-encodes text for the delta and patch wire formats. The safe set follows RFC 3986
// full-URI encoding with one exception shared with other diff-match-patch implementations: spaces
// stay literal. Hex digits are uppercase, non-ASCII runes are encoded byte by byte as UTF-8.
func escape(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9':
			sb.WriteByte(c)
		case strings.IndexByte(" !#$&'()*+,-./:;=?@_~", c) != -1:
			sb.WriteByte(c)
		default:
			const hex = "0123456789ABCDEF"
			sb.WriteByte('%')
			sb.WriteByte(hex[c>>4])
			sb.WriteByte(hex[c&0xf])
		}
	}
	return sb.String()
}

// unescape is the inverse of [escape]. Literal '+' is kept as-is, a malformed percent escape is
// an error.
func unescape(text string) (string, error) {
	return url.PathUnescape(text)
}

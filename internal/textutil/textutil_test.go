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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "null", a: "abc", b: "xyz", want: 0},
		{name: "non-null", a: "1234abcdef", b: "1234xyz", want: 4},
		{name: "whole", a: "1234", b: "1234xyz", want: 4},
		{name: "empty", a: "", b: "xyz", want: 0},
		{name: "multibyte", a: "日本語x", b: "日本語y", want: 9},
		{name: "rune-boundary", a: "日本", b: "日\xe6\x9c", want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonPrefix(tt.a, tt.b); got != tt.want {
				t.Errorf("CommonPrefix(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCommonSuffix(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "null", a: "abc", b: "xyz", want: 0},
		{name: "non-null", a: "abcdef1234", b: "xyz1234", want: 4},
		{name: "whole", a: "1234", b: "xyz1234", want: 4},
		{name: "empty", a: "1234", b: "", want: 0},
		{name: "multibyte", a: "x日本語", b: "y日本語", want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonSuffix(tt.a, tt.b); got != tt.want {
				t.Errorf("CommonSuffix(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCommonPrefixSuffixRunes(t *testing.T) {
	if got := CommonPrefixRunes([]rune("1234abcdef"), []rune("1234xyz")); got != 4 {
		t.Errorf("CommonPrefixRunes(...) = %d, want 4", got)
	}
	if got := CommonSuffixRunes([]rune("abcdef1234"), []rune("xyz1234")); got != 4 {
		t.Errorf("CommonSuffixRunes(...) = %d, want 4", got)
	}
	if got := CommonPrefixRunes([]rune("日本語x"), []rune("日本語y")); got != 3 {
		t.Errorf("CommonPrefixRunes(...) = %d, want 3", got)
	}
}

func TestCommonOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "null", a: "", b: "abcd", want: 0},
		{name: "whole", a: "abc", b: "abcd", want: 3},
		{name: "no-overlap", a: "123456", b: "abcd", want: 0},
		{name: "overlap", a: "123456xxx", b: "xxxabcd", want: 3},
		// Some overly clever languages (C#) may treat ligatures as equal to their component
		// letters, but this is a byte-level comparison.
		{name: "unicode", a: "fi", b: "ﬁi", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("CommonOverlap(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLinesToRunes(t *testing.T) {
	tests := []struct {
		name         string
		text1, text2 string
		want1, want2 []rune
		wantLines    []string
	}{
		{
			name:      "shared-lines",
			text1:     "alpha\nbeta\nalpha\n",
			text2:     "beta\nalpha\nbeta\n",
			want1:     []rune{1, 2, 1},
			want2:     []rune{2, 1, 2},
			wantLines: []string{"", "alpha\n", "beta\n"},
		},
		{
			name:      "empty-first",
			text1:     "",
			text2:     "alpha\r\nbeta\r\n\r\n\r\n",
			want1:     nil,
			want2:     []rune{1, 2, 3, 3},
			wantLines: []string{"", "alpha\r\n", "beta\r\n", "\r\n"},
		},
		{
			name:      "no-trailing-newline",
			text1:     "a",
			text2:     "b",
			want1:     []rune{1},
			want2:     []rune{2},
			wantLines: []string{"", "a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got1, got2, gotLines := LinesToRunes(tt.text1, tt.text2)
			if diff := cmp.Diff(tt.want1, got1); diff != "" {
				t.Errorf("runes1 differ [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.want2, got2); diff != "" {
				t.Errorf("runes2 differ [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantLines, gotLines); diff != "" {
				t.Errorf("lines differ [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestLineCodeRoundtrip(t *testing.T) {
	// The code space skips the surrogate range so that codes survive conversions to string.
	for _, i := range []int{0, 1, 0xD7FF, 0xD800, 0xD801, 0xFFFF, 1_000_000} {
		r := LineCode(i)
		if r >= 0xD800 && r < 0xE000 {
			t.Errorf("LineCode(%d) = %U is a surrogate", i, r)
		}
		if got := LineIndex(r); got != i {
			t.Errorf("LineIndex(LineCode(%d)) = %d", i, got)
		}
		if s := string(r); []rune(s)[0] != r {
			t.Errorf("LineCode(%d) = %U does not survive string conversion", i, r)
		}
	}
}

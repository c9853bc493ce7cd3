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

package myers

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/textpatch/internal/edits"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name         string
		text1, text2 string
		want         []edits.Edit
	}{
		{
			name:  "equality",
			text1: "abc",
			text2: "abc",
			want:  []edits.Edit{{Op: edits.Equal, Text: "abc"}},
		},
		{
			name:  "both-empty",
			text1: "",
			text2: "",
			want:  nil,
		},
		{
			name:  "simple-insertion",
			text1: "abc",
			text2: "ab123c",
			want: []edits.Edit{
				{Op: edits.Equal, Text: "ab"},
				{Op: edits.Insert, Text: "123"},
				{Op: edits.Equal, Text: "c"},
			},
		},
		{
			name:  "simple-deletion",
			text1: "a123bc",
			text2: "abc",
			want: []edits.Edit{
				{Op: edits.Equal, Text: "a"},
				{Op: edits.Delete, Text: "123"},
				{Op: edits.Equal, Text: "bc"},
			},
		},
		{
			name:  "two-insertions",
			text1: "abc",
			text2: "a123b456c",
			want: []edits.Edit{
				{Op: edits.Equal, Text: "a"},
				{Op: edits.Insert, Text: "123"},
				{Op: edits.Equal, Text: "b"},
				{Op: edits.Insert, Text: "456"},
				{Op: edits.Equal, Text: "c"},
			},
		},
		{
			name:  "two-deletions",
			text1: "a123b456c",
			text2: "abc",
			want: []edits.Edit{
				{Op: edits.Equal, Text: "a"},
				{Op: edits.Delete, Text: "123"},
				{Op: edits.Equal, Text: "b"},
				{Op: edits.Delete, Text: "456"},
				{Op: edits.Equal, Text: "c"},
			},
		},
		{
			name:  "replacement",
			text1: "a",
			text2: "b",
			want: []edits.Edit{
				{Op: edits.Delete, Text: "a"},
				{Op: edits.Insert, Text: "b"},
			},
		},
		{
			name:  "sentences",
			text1: "Apples are a fruit.",
			text2: "Bananas are also fruit.",
			want: []edits.Edit{
				{Op: edits.Delete, Text: "Apple"},
				{Op: edits.Insert, Text: "Banana"},
				{Op: edits.Equal, Text: "s are a"},
				{Op: edits.Insert, Text: "lso"},
				{Op: edits.Equal, Text: " fruit."},
			},
		},
		{
			name:  "unicode-and-controls",
			text1: "ax\t",
			text2: "ڀx\x00",
			want: []edits.Edit{
				{Op: edits.Delete, Text: "a"},
				{Op: edits.Insert, Text: "ڀ"},
				{Op: edits.Equal, Text: "x"},
				{Op: edits.Delete, Text: "\t"},
				{Op: edits.Insert, Text: "\x00"},
			},
		},
		{
			name:  "overlap-1",
			text1: "1ayb2",
			text2: "abxab",
			want: []edits.Edit{
				{Op: edits.Delete, Text: "1"},
				{Op: edits.Equal, Text: "a"},
				{Op: edits.Delete, Text: "y"},
				{Op: edits.Equal, Text: "b"},
				{Op: edits.Delete, Text: "2"},
				{Op: edits.Insert, Text: "xab"},
			},
		},
		{
			name:  "overlap-2",
			text1: "abcy",
			text2: "xaxcxabc",
			want: []edits.Edit{
				{Op: edits.Insert, Text: "xaxcx"},
				{Op: edits.Equal, Text: "abc"},
				{Op: edits.Delete, Text: "y"},
			},
		},
		{
			name:  "overlap-3",
			text1: "ABCDa=bcd=efghijklmnopqrsEFGHIJKLMNOefg",
			text2: "a-bcd-efghijklmnopqrs",
			want: []edits.Edit{
				{Op: edits.Delete, Text: "ABCD"},
				{Op: edits.Equal, Text: "a"},
				{Op: edits.Delete, Text: "="},
				{Op: edits.Insert, Text: "-"},
				{Op: edits.Equal, Text: "bcd"},
				{Op: edits.Delete, Text: "="},
				{Op: edits.Insert, Text: "-"},
				{Op: edits.Equal, Text: "efghijklmnopqrs"},
				{Op: edits.Delete, Text: "EFGHIJKLMNOefg"},
			},
		},
		{
			name:  "large-equality",
			text1: "a [[Pennsylvania]] and [[New",
			text2: " and [[Pennsylvania]]",
			want: []edits.Edit{
				{Op: edits.Insert, Text: " "},
				{Op: edits.Equal, Text: "a"},
				{Op: edits.Insert, Text: "nd"},
				{Op: edits.Equal, Text: " [[Pennsylvania]]"},
				{Op: edits.Delete, Text: " and [[New"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A zero deadline guarantees a minimal diff, making the results predictable.
			got := Diff(tt.text1, tt.text2, false, time.Time{})
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Diff(%q, %q) result differs [-want,+got]:\n%s", tt.text1, tt.text2, diff)
			}
		})
	}
}

func TestDiffHalfMatch(t *testing.T) {
	tests := []struct {
		name         string
		text1, text2 string
		want         []string // prefix1, suffix1, prefix2, suffix2, common; nil for no match
	}{
		{
			name:  "no-match-1",
			text1: "1234567890",
			text2: "abcdef",
			want:  nil,
		},
		{
			name:  "no-match-2",
			text1: "12345",
			text2: "23",
			want:  nil,
		},
		{
			name:  "single-match-1",
			text1: "1234567890",
			text2: "a345678z",
			want:  []string{"12", "90", "a", "z", "345678"},
		},
		{
			name:  "single-match-2",
			text1: "a345678z",
			text2: "1234567890",
			want:  []string{"a", "z", "12", "90", "345678"},
		},
		{
			name:  "single-match-3",
			text1: "abc56789z",
			text2: "1234567890",
			want:  []string{"abc", "z", "1234", "0", "56789"},
		},
		{
			name:  "single-match-4",
			text1: "a23456xyz",
			text2: "1234567890",
			want:  []string{"a", "xyz", "1", "7890", "23456"},
		},
		{
			name:  "multiple-matches",
			text1: "121231234123451234123121",
			text2: "a1234123451234z",
			want:  []string{"12123", "123121", "a", "z", "1234123451234"},
		},
		{
			name:  "non-optimal",
			text1: "qHilloHelloHew",
			text2: "xHelloHeHulloy",
			want:  []string{"qHillo", "w", "x", "Hulloy", "HelloHe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm := halfMatch([]rune(tt.text1), []rune(tt.text2))
			var got []string
			if hm != nil {
				got = []string{
					string(hm.prefix1), string(hm.suffix1),
					string(hm.prefix2), string(hm.suffix2),
					string(hm.common),
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("halfMatch(%q, %q) differs [-want,+got]:\n%s", tt.text1, tt.text2, diff)
			}
		})
	}
}

func TestDiffBisect(t *testing.T) {
	runes1, runes2 := []rune("cat"), []rune("map")

	want := []edits.Edit{
		{Op: edits.Delete, Text: "c"},
		{Op: edits.Insert, Text: "m"},
		{Op: edits.Equal, Text: "a"},
		{Op: edits.Delete, Text: "t"},
		{Op: edits.Insert, Text: "p"},
	}
	got := bisect(runes1, runes2, time.Time{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bisect(...) differs [-want,+got]:\n%s", diff)
	}

	// With a deadline in the past the search falls back to delete-all plus insert-all.
	want = []edits.Edit{
		{Op: edits.Delete, Text: "cat"},
		{Op: edits.Insert, Text: "map"},
	}
	got = bisect(runes1, runes2, time.Unix(0, 1))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bisect(...) with expired deadline differs [-want,+got]:\n%s", diff)
	}
}

func TestDiffLineMode(t *testing.T) {
	// Line mode is a speedup only, the result must reconstruct the same texts.
	text1 := strings.Repeat("1234567890\n", 13)
	text2 := strings.Repeat("abcdefghij\n", 13)
	deadline := time.Now().Add(time.Second)

	a := Diff(text1, text2, true, deadline)
	b := Diff(text1, text2, false, deadline)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("line mode result differs from character mode [-line,+char]:\n%s", diff)
	}

	// Mixed change with enough text to trigger the line-based pass.
	text1 = strings.Repeat("keep this line\nchange me\n", 10)
	text2 = strings.Repeat("keep this line\nchanged already\n", 10)
	diffs := Diff(text1, text2, true, deadline)
	if got := edits.Text1(diffs); got != text1 {
		t.Errorf("Text1(...) doesn't reconstruct input:\ngot:  %q\nwant: %q", got, text1)
	}
	if got := edits.Text2(diffs); got != text2 {
		t.Errorf("Text2(...) doesn't reconstruct input:\ngot:  %q\nwant: %q", got, text2)
	}
}

func TestDiffDeadline(t *testing.T) {
	// Construct a pathological input and check that the deadline is honored, at least roughly.
	a := strings.Repeat("`Twas brillig, and the slithy toves\nDid gyre and gimble in the wabe:\n", 100)
	b := strings.Repeat("I am the very model of a modern major general,\nI've information vegetable, animal, and mineral,\n", 100)
	timeout := 100 * time.Millisecond

	start := time.Now()
	Diff(a, b, false, start.Add(timeout))
	elapsed := time.Since(start)
	if elapsed < timeout {
		t.Errorf("diff finished before the deadline, input not pathological enough: %v < %v", elapsed, timeout)
	}
	if elapsed > 10*timeout {
		t.Errorf("diff overshot the deadline: %v > %v", elapsed, 10*timeout)
	}
}

func TestDiffRandom(t *testing.T) {
	// The fundamental invariant: for arbitrary inputs and settings, the result losslessly encodes
	// both input texts.
	rng := rand.New(rand.NewPCG(123, 456))
	alphabet := []rune("abAB \nä日")
	gen := func(n int) string {
		var sb strings.Builder
		for range n {
			sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}
		return sb.String()
	}
	for i := range 500 {
		text1 := gen(rng.IntN(150))
		text2 := gen(rng.IntN(150))
		var deadline time.Time
		lineMode := i%2 == 0
		if i%3 == 0 {
			deadline = time.Now().Add(time.Second)
		}
		diffs := Diff(text1, text2, lineMode, deadline)
		if got := edits.Text1(diffs); got != text1 {
			t.Fatalf("Text1(Diff(%q, %q)) = %q", text1, text2, got)
		}
		if got := edits.Text2(diffs); got != text2 {
			t.Fatalf("Text2(Diff(%q, %q)) = %q", text1, text2, got)
		}
	}
}

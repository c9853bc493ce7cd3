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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestText1Text2(t *testing.T) {
	diffs := []Edit{
		{Equal, "jump"},
		{Delete, "s"},
		{Insert, "ed"},
		{Equal, " over "},
		{Delete, "the"},
		{Insert, "a"},
		{Equal, " lazy"},
	}
	if got, want := Text1(diffs), "jumps over the lazy"; got != want {
		t.Errorf("Text1(...) = %q, want %q", got, want)
	}
	if got, want := Text2(diffs), "jumped over a lazy"; got != want {
		t.Errorf("Text2(...) = %q, want %q", got, want)
	}
}

func TestXIndex(t *testing.T) {
	tests := []struct {
		name  string
		diffs []Edit
		loc   int
		want  int
	}{
		{
			name: "translation",
			diffs: []Edit{
				{Delete, "a"},
				{Insert, "1234"},
				{Equal, "xyz"},
			},
			loc:  2,
			want: 5,
		},
		{
			name: "deletion-collapses",
			diffs: []Edit{
				{Equal, "a"},
				{Delete, "1234"},
				{Equal, "xyz"},
			},
			loc:  3,
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XIndex(tt.diffs, tt.loc); got != tt.want {
				t.Errorf("XIndex(..., %d) = %d, want %d", tt.loc, got, tt.want)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name  string
		diffs []Edit
		want  int
	}{
		{
			name: "trailing-equality",
			diffs: []Edit{
				{Delete, "abc"},
				{Insert, "1234"},
				{Equal, "xyz"},
			},
			want: 4,
		},
		{
			name: "leading-equality",
			diffs: []Edit{
				{Equal, "xyz"},
				{Delete, "abc"},
				{Insert, "1234"},
			},
			want: 4,
		},
		{
			name: "middle-equality",
			diffs: []Edit{
				{Delete, "abc"},
				{Equal, "xyz"},
				{Insert, "1234"},
			},
			want: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Levenshtein(tt.diffs); got != tt.want {
				t.Errorf("Levenshtein(...) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplice(t *testing.T) {
	in := []Edit{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}}
	got := Splice(in, 1, 1, Edit{Equal, "x"}, Edit{Equal, "y"})
	want := []Edit{{Equal, "a"}, {Equal, "x"}, {Equal, "y"}, {Insert, "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Splice(...) result differs [-want,+got]:\n%s", diff)
	}
	// The input must not be modified, even when the replacement is shorter.
	if diff := cmp.Diff([]Edit{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}}, in); diff != "" {
		t.Errorf("Splice(...) modified its input [-want,+got]:\n%s", diff)
	}
}

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{Equal: "Equal", Delete: "Delete", Insert: "Insert", Op(7): "Op(7)"} {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(op), got, want)
		}
	}
}

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

package textpatch_test

import (
	"fmt"

	"znkr.io/textpatch"
)

func ExampleDiff() {
	diffs := textpatch.Diff("the quick brown fox", "the quick red fox")
	diffs = textpatch.CleanupSemantic(diffs)
	for _, d := range diffs {
		fmt.Printf("%v %q\n", d.Op, d.Text)
	}
	// Output:
	// Equal "the quick "
	// Delete "brown"
	// Insert "red"
	// Equal " fox"
}

func ExampleMatch() {
	loc := textpatch.Match(
		"I am the very model of a modern major general.",
		" that berry ",
		5,
		textpatch.MatchThreshold(0.7),
	)
	fmt.Println(loc)
	// Output:
	// 4
}

func ExampleApply() {
	patches := textpatch.Make(
		"The quick brown fox jumps over the lazy dog.",
		"The quick red fox jumps over the lazy dog.",
	)

	// The text drifted since the patches were made, Apply relocates the changes.
	result, applied := textpatch.Apply(patches, "The quick brown fox leaps over the lazy dog.")
	fmt.Println(result)
	fmt.Println(applied)
	// Output:
	// The quick red fox leaps over the lazy dog.
	// [true]
}

func ExampleToDelta() {
	diffs := []textpatch.Edit{
		{Op: textpatch.Equal, Text: "jump"},
		{Op: textpatch.Delete, Text: "s"},
		{Op: textpatch.Insert, Text: "ed"},
		{Op: textpatch.Equal, Text: " over "},
		{Op: textpatch.Delete, Text: "the"},
		{Op: textpatch.Insert, Text: "a"},
		{Op: textpatch.Equal, Text: " lazy"},
	}
	fmt.Printf("%q\n", textpatch.ToDelta(diffs))
	// Output:
	// "=4\t-1\t+ed\t=6\t-3\t+a\t=5"
}

func ExampleFromDelta() {
	diffs, err := textpatch.FromDelta("jumps over the lazy", "=4\t-1\t+ed\t=6\t-3\t+a\t=5")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(textpatch.Text2(diffs))
	// Output:
	// jumped over a lazy
}

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

// textpatch is a command line frontend for the textpatch package.
//
//	textpatch diff <old> <new>    write a fuzzy patch for the changes from <old> to <new> to stdout
//	textpatch apply <patch> <file>  apply a fuzzy patch to <file> and write the result to stdout
//
// apply exits with status 1 when one or more hunks could not be applied; the best-effort result
// is still written to stdout and the failed hunks are reported on stderr.
package main

import (
	"fmt"
	"os"

	"znkr.io/textpatch"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s diff|apply <args>", args[0])
	}
	switch args[1] {
	case "diff":
		if len(args) != 4 {
			return fmt.Errorf("usage: %s diff <old> <new>", args[0])
		}
		return runDiff(args[2], args[3])
	case "apply":
		if len(args) != 4 {
			return fmt.Errorf("usage: %s apply <patch> <file>", args[0])
		}
		return runApply(args[2], args[3])
	default:
		return fmt.Errorf("unknown command %q", args[1])
	}
}

func runDiff(oldFile, newFile string) error {
	old, err := os.ReadFile(oldFile)
	if err != nil {
		return fmt.Errorf("reading old file: %v", err)
	}
	new, err := os.ReadFile(newFile)
	if err != nil {
		return fmt.Errorf("reading new file: %v", err)
	}

	patches := textpatch.Make(string(old), string(new))
	os.Stdout.WriteString(textpatch.ToText(patches))
	return nil
}

func runApply(patchFile, file string) error {
	patchText, err := os.ReadFile(patchFile)
	if err != nil {
		return fmt.Errorf("reading patch file: %v", err)
	}
	text, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading input file: %v", err)
	}

	patches, err := textpatch.FromText(string(patchText))
	if err != nil {
		return fmt.Errorf("parsing patch file: %v", err)
	}

	result, applied := textpatch.Apply(patches, string(text))
	os.Stdout.WriteString(result)

	failed := 0
	for i, ok := range applied {
		if !ok {
			fmt.Fprintf(os.Stderr, "hunk #%d failed to apply\n", i+1)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hunks failed to apply", failed, len(applied))
	}
	return nil
}

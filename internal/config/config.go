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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// textpatch.Option.
package config

import "time"

// Config collects all configurable parameters for the diff, match, and patch functions in this
// module.
type Config struct {
	// Timeout is the maximum time to spend computing a diff before falling back to a suboptimal
	// result. Zero means unlimited, which also disables the half-match heuristic since it can
	// produce non-minimal diffs.
	Timeout time.Duration

	// EditCost is the cost of an empty edit operation in terms of edit characters, used by the
	// efficiency cleanup.
	EditCost int

	// MatchThreshold is the score at which no match is declared (0.0 = exact only, 1.0 = accept
	// anything).
	MatchThreshold float64

	// MatchDistance controls how far from the expected location a match may stray: a match this
	// many characters away adds 1.0 to its score. Zero requires positional exactness.
	MatchDistance int

	// DeleteThreshold controls how closely the contents of a large deletion have to match the
	// expected contents when applying a patch.
	DeleteThreshold float64

	// Margin is the chunk size for patch context.
	Margin int

	// If set, find a minimal diff irrespective of the cost: no deadline, no half-match shortcut,
	// and no line-mode speedup.
	Optimal bool
}

// Default is the default configuration.
var Default = Config{
	Timeout:         time.Second,
	EditCost:        4,
	MatchThreshold:  0.5,
	MatchDistance:   1000,
	DeleteThreshold: 0.5,
	Margin:          4,
	Optimal:         false,
}

// Flag describes a single config entry. This is used to detect options being passed to functions
// that don't support them.
type Flag int

const (
	Timeout Flag = 1 << iota
	EditCost
	MatchThreshold
	MatchDistance
	DeleteThreshold
	Margin
	Optimal
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Timeout:
		return "textpatch.Timeout"
	case EditCost:
		return "textpatch.EditCost"
	case MatchThreshold:
		return "textpatch.MatchThreshold"
	case MatchDistance:
		return "textpatch.MatchDistance"
	case DeleteThreshold:
		return "textpatch.DeleteThreshold"
	case Margin:
		return "textpatch.Margin"
	case Optimal:
		return "textpatch.Optimal"
	default:
		panic("never reached")
	}
}

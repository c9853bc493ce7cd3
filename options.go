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
	"time"

	"znkr.io/textpatch/internal/config"
)

// Option configures the behavior of the functions in this package. Every function documents the
// options it supports, passing an unsupported option panics.
type Option = config.Option

// Timeout sets the maximum time to spend searching for a minimal diff. When the deadline passes,
// the search is cut short and a valid but possibly non-minimal result is returned. A timeout of
// zero removes the time limit, it also disables the half-match speedup which can produce
// non-minimal results.
//
// Default: 1s.
func Timeout(d time.Duration) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Timeout = d
		return config.Timeout
	}
}

// EditCost sets the cost of an empty edit operation in terms of edit characters. Raising it makes
// [CleanupEfficiency] more aggressive about trading short equalities for fewer edits.
//
// Default: 4.
func EditCost(cost int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.EditCost = cost
		return config.EditCost
	}
}

// MatchThreshold sets the score at which a fuzzy match is rejected: 0.0 accepts only perfect
// matches (both in content and location), 1.0 accepts nearly anything.
//
// Default: 0.5.
func MatchThreshold(threshold float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MatchThreshold = threshold
		return config.MatchThreshold
	}
}

// MatchDistance sets how far from the expected location a fuzzy match may stray: a match this many
// characters away from the expected location adds 1.0 to its score. A distance of zero requires a
// match at the exact expected location.
//
// Default: 1000.
func MatchDistance(distance int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MatchDistance = distance
		return config.MatchDistance
	}
}

// DeleteThreshold sets how closely the content of a large deletion has to match the text found at
// the matched location when applying a patch: 0.0 requires a perfect match, 1.0 deletes whatever
// happens to be there.
//
// Default: 0.5.
func DeleteThreshold(threshold float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DeleteThreshold = threshold
		return config.DeleteThreshold
	}
}

// Margin sets the chunk size for patch context.
//
// Default: 4.
func Margin(margin int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Margin = margin
		return config.Margin
	}
}

// Optimal configures the diff to find a minimal edit script irrespective of the cost: no deadline,
// no half-match shortcut, and no line-by-line speedup. For large inputs with little in common this
// can be very slow.
func Optimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Optimal = true
		return config.Optimal
	}
}

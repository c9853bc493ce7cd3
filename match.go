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
	"znkr.io/textpatch/internal/bitap"
	"znkr.io/textpatch/internal/config"
)

// Match locates the instance of pattern in text closest to loc, tolerating errors in both the
// content and the location of the match, and returns its byte offset or -1 if no acceptable match
// exists. A loc outside text is clamped to the nearest end.
//
// A candidate match is scored by its error fraction plus its distance from loc weighted by
// [MatchDistance]; candidates scoring above [MatchThreshold] are rejected. Supported options:
// [MatchThreshold], [MatchDistance].
//
// The fuzzy search is based on the Bitap algorithm and limits pattern to 32 bytes; Match panics
// for longer patterns unless they match exactly at loc.
func Match(text, pattern string, loc int, opts ...Option) int {
	cfg := config.FromOptions(opts, config.MatchThreshold|config.MatchDistance)
	return matchWith(cfg, text, pattern, loc)
}

func matchWith(cfg config.Config, text, pattern string, loc int) int {
	loc = max(0, min(loc, len(text)))
	switch {
	case text == pattern:
		// Shortcut (potentially not guaranteed by the algorithm).
		return 0
	case len(text) == 0:
		return -1
	case loc+len(pattern) <= len(text) && text[loc:loc+len(pattern)] == pattern:
		// Perfect match at the perfect spot! (Includes case of empty pattern)
		return loc
	}
	return bitap.Match(text, pattern, loc, cfg.MatchThreshold, cfg.MatchDistance)
}

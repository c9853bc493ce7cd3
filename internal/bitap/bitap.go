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

// Package bitap implements fuzzy text location based on the Bitap algorithm (Baeza-Yates and
// Gonnet, Wu and Manber): for each error count d it maintains a bit-parallel state of all pattern
// prefixes that match the text with d errors, so that the cost is O(errors * text) with a very
// small constant.
//
// A candidate location is accepted based on a score that combines the error count with the
// distance from the expected location; the search stops as soon as no better score is reachable.
package bitap

// MaxBits is the number of bits in the state word and therefore the maximum pattern length in
// bytes. Longer patterns must be cut down by the caller.
const MaxBits = 32

// Match locates the closest instance of pattern in text near loc and returns its byte offset, or
// -1 if no match scores below threshold. loc must be within text and len(pattern) must not exceed
// [MaxBits].
//
// A candidate's score is its error fraction plus its distance from loc divided by distance;
// distance == 0 demands a match at exactly loc.
func Match(text, pattern string, loc int, threshold float64, distance int) int {
	if len(pattern) > MaxBits {
		panic("bitap: pattern longer than the state word")
	}
	s := alphabet(pattern)

	// Highest score beyond which we give up.
	scoreThreshold := threshold
	// Is there a nearby exact match? (speedup)
	if bestLoc := indexOf(text, pattern, loc); bestLoc != -1 {
		scoreThreshold = min(score(0, bestLoc, loc, pattern, distance), scoreThreshold)
		// What about in the other direction? (speedup)
		if bestLoc := lastIndexOf(text, pattern, loc+len(pattern)); bestLoc != -1 {
			scoreThreshold = min(score(0, bestLoc, loc, pattern, distance), scoreThreshold)
		}
	}

	matchMask := 1 << (len(pattern) - 1)
	bestLoc := -1

	var binMin, binMid int
	binMax := len(pattern) + len(text)
	var lastRd []int
	for d := range len(pattern) {
		// Scan for the best match; each iteration allows for one more error. Run a binary search
		// to determine how far from loc we can stray at this error level.
		binMin = 0
		binMid = binMax
		for binMin < binMid {
			if score(d, loc+binMid, loc, pattern, distance) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		// Use the result from this iteration as the maximum for the next.
		binMax = binMid
		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + len(pattern)

		rd := make([]int, finish+2)
		rd[finish+1] = (1 << d) - 1
		for j := finish; j >= start; j-- {
			var charMatch int
			if len(text) > j-1 {
				charMatch = s[text[j-1]]
			}
			if d == 0 {
				// First pass: exact match.
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				// Subsequent passes: fuzzy match. Combine a match, a substitution or insertion,
				// and a deletion at this error level.
				rd[j] = ((rd[j+1]<<1)|1)&charMatch |
					((lastRd[j+1]|lastRd[j])<<1 | 1) |
					lastRd[j+1]
			}
			if rd[j]&matchMask != 0 {
				score := score(d, j-1, loc, pattern, distance)
				// This match will almost certainly be better than any existing match, but check
				// anyway.
				if score <= scoreThreshold {
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						// When passing loc, don't exceed our current distance from loc.
						start = max(1, 2*loc-bestLoc)
					} else {
						// Already passed loc, downhill from here on in.
						break
					}
				}
			}
		}
		// No hope of a better match at greater error levels.
		if score(d+1, loc, loc, pattern, distance) > scoreThreshold {
			break
		}
		lastRd = rd
	}
	return bestLoc
}

// score computes the overall score for a match with e errors at position x. Smaller is better,
// 0.0 is a perfect match at the expected location.
func score(e, x, loc int, pattern string, distance int) float64 {
	accuracy := float64(e) / float64(len(pattern))
	proximity := loc - x
	if proximity < 0 {
		proximity = -proximity
	}
	if distance == 0 {
		// Dodge divide by zero.
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + float64(proximity)/float64(distance)
}

// alphabet maps each byte of pattern to a bit mask of the positions at which it occurs, with the
// first pattern byte in the highest bit. Bytes not in the pattern map to zero.
func alphabet(pattern string) map[byte]int {
	s := make(map[byte]int, len(pattern))
	for i := 0; i < len(pattern); i++ {
		s[pattern[i]] |= 1 << (len(pattern) - i - 1)
	}
	return s
}

// indexOf returns the first occurrence of pattern in text at or after start, or -1.
func indexOf(text, pattern string, start int) int {
	if start > len(text) {
		return -1
	}
	if start < 0 {
		start = 0
	}
	for i := start; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			return i
		}
	}
	return -1
}

// lastIndexOf returns the last occurrence of pattern in text that starts at or before end, or -1.
func lastIndexOf(text, pattern string, end int) int {
	if end < 0 {
		return -1
	}
	if end > len(text) {
		end = len(text)
	}
	for i := min(end, len(text)-len(pattern)); i >= 0; i-- {
		if text[i:i+len(pattern)] == pattern {
			return i
		}
	}
	return -1
}

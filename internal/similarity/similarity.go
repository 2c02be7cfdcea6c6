/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package similarity scores how close two identifier strings are, so
// that near-duplicate collection names ("apirequestlogs" vs
// "apiRequestLogs") can be detected. Scoring is pure and deterministic.
package similarity

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the score at or above which two names are treated
// as the same concept. Single source of truth; call sites must not carry
// their own literals.
const DefaultThreshold = 0.5

// Normalize lowercases the name and strips every non-alphanumeric rune,
// so that case and word-separator conventions do not affect the score.
// No stemming: "skill" and "skills" stay distinct inputs and are judged
// by edit distance alone.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Distance computes the Levenshtein edit distance between a and b using
// two rolling rows, O(min(len(a),len(b))) space.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Score returns a normalized similarity in [0,1] between the two names
// after Normalize. Two empty names are identical (1.0); exactly one
// empty name shares nothing (0.0).
func Score(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}

	la, lb := len([]rune(na)), len([]rune(nb))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	if la == 0 || lb == 0 {
		return 0.0
	}

	dist := Distance(na, nb)
	return float64(maxLen-dist) / float64(maxLen)
}

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

package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"camel case", "apiRequestLogs", "apirequestlogs"},
		{"snake case", "user_activity", "useractivity"},
		{"mixed punctuation", "career-pathway.v2", "careerpathwayv2"},
		{"already normal", "users", "users"},
		{"empty", "", ""},
		{"punctuation only", "__--__", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"skill", "skills", 1},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Distance(tt.a, tt.b), "Distance(%q, %q)", tt.a, tt.b)
	}
}

func TestScore_Identity(t *testing.T) {
	for _, s := range []string{"", "users", "apiRequestLogs", "user_activity"} {
		assert.Equal(t, 1.0, Score(s, s), "Score(%q, %q)", s, s)
	}
}

func TestScore_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"users", "user"},
		{"apirequestlogs", "apiRequestLogs"},
		{"skills", "roles"},
		{"", "x"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]), "Score(%q, %q)", p[0], p[1])
	}
}

func TestScore_NormalizationEquivalence(t *testing.T) {
	// Names differing only by case or punctuation are identical.
	assert.Equal(t, 1.0, Score("UserActivity", "user_activity"))
	assert.Equal(t, 1.0, Score("apiRequestLogs", "apirequestlogs"))
	assert.Equal(t, 1.0, Score("career-pathways", "careerPathways"))
}

func TestScore_EmptyInputs(t *testing.T) {
	assert.Equal(t, 1.0, Score("", ""))
	assert.Equal(t, 0.0, Score("x", ""))
	assert.Equal(t, 0.0, Score("", "x"))
	// Punctuation-only names normalize to empty.
	assert.Equal(t, 1.0, Score("__", "--"))
	assert.Equal(t, 0.0, Score("__", "users"))
}

func TestScore_Plurals(t *testing.T) {
	// Plurals score highly on edit distance alone; no stemming applies.
	s := Score("skill", "skills")
	assert.InDelta(t, 5.0/6.0, s, 1e-9)
	assert.GreaterOrEqual(t, s, DefaultThreshold)
}

func TestScore_Unrelated(t *testing.T) {
	assert.Less(t, Score("users", "apirequestlogs"), DefaultThreshold)
	assert.Less(t, Score("skills", "industries"), DefaultThreshold)
}

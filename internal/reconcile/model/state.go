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

package model

// CollectionState tracks one collection across a reconciliation run.
type CollectionState string

const (
	StateUntouched   CollectionState = "UNTOUCHED"
	StateCanonical   CollectionState = "CANONICAL"
	StateMergeSource CollectionState = "MERGE_SOURCE"
	StateUnresolved  CollectionState = "UNRESOLVED"
	StateMerging     CollectionState = "MERGING"
	StateDropped     CollectionState = "DROPPED"
)

// allowedTransitions encodes the per-run state machine. Canonical and
// Unresolved are terminal for the run; nothing leaves Dropped.
var allowedTransitions = map[CollectionState][]CollectionState{
	StateUntouched:   {StateCanonical, StateMergeSource, StateUnresolved},
	StateMergeSource: {StateMerging, StateDropped, StateUnresolved},
	StateMerging:     {StateDropped, StateUnresolved},
}

// CanTransition reports whether moving from s to next is legal.
func (s CollectionState) CanTransition(next CollectionState) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

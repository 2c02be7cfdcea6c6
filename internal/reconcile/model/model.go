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

import "time"

// CollectionInfo describes one collection as listed from the store.
type CollectionInfo struct {
	Name     string `json:"name"`
	DocCount int64  `json:"doc_count"`
}

// SimilarityPair is the scored, transient comparison of two names.
type SimilarityPair struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

type OperationKind string

const (
	OpDrop      OperationKind = "drop"
	OpMergeInto OperationKind = "merge_into"
	OpRename    OperationKind = "rename"
)

// Operation is a single structural change against the store. For
// merge_into and rename, To names the target collection.
type Operation struct {
	Kind OperationKind `json:"kind"`
	From string        `json:"from"`
	To   string        `json:"to,omitempty"`
}

// DuplicateGroup is a transitively-closed set of names deemed the same
// concept. A resolved group carries a canonical survivor and the
// operations that converge the group onto it. An unresolved group
// carries a reason and no operations; it is never partially processed.
type DuplicateGroup struct {
	Members    []CollectionInfo `json:"members"`
	Pairs      []SimilarityPair `json:"pairs"`
	Canonical  string           `json:"canonical,omitempty"`
	Unresolved bool             `json:"unresolved"`
	Reason     string           `json:"reason,omitempty"`
	Operations []Operation      `json:"operations,omitempty"`
}

// MergePlan is the full output of a planning pass. Advisories are
// naming-convention renames of non-duplicate collections; they are
// reported but excluded from the destructive operation set unless the
// caller opts in.
type MergePlan struct {
	RunID      string           `json:"run_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Threshold  float64          `json:"threshold"`
	Groups     []DuplicateGroup `json:"groups"`
	Advisories []Operation      `json:"advisories,omitempty"`
}

// Empty reports whether the plan carries no work at all. Re-planning an
// already-reconciled store must yield an empty plan.
func (p *MergePlan) Empty() bool {
	for _, g := range p.Groups {
		if len(g.Operations) > 0 || g.Unresolved {
			return false
		}
	}
	return len(p.Advisories) == 0
}

// ResolvedGroups counts groups that carry executable operations.
func (p *MergePlan) ResolvedGroups() int {
	n := 0
	for _, g := range p.Groups {
		if !g.Unresolved {
			n++
		}
	}
	return n
}

// UnresolvedGroups counts groups excluded from execution.
func (p *MergePlan) UnresolvedGroups() int {
	n := 0
	for _, g := range p.Groups {
		if g.Unresolved {
			n++
		}
	}
	return n
}

// ApplySummary is the outcome of executing a MergePlan.
type ApplySummary struct {
	RunID              string    `json:"run_id"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	GroupsResolved     int       `json:"groups_resolved"`
	GroupsUnresolved   int       `json:"groups_unresolved"`
	DocumentsCopied    int64     `json:"documents_copied"`
	DocumentsSkipped   int64     `json:"documents_skipped"`
	CollectionsDropped int       `json:"collections_dropped"`
	CollectionsRenamed int       `json:"collections_renamed"`
	RenamesFailed      int       `json:"renames_failed"`
}

// Failed reports whether apply should exit non-zero: any unresolved
// group, skipped document or failed rename counts as a partial failure.
func (s *ApplySummary) Failed() bool {
	return s.GroupsUnresolved > 0 || s.DocumentsSkipped > 0 || s.RenamesFailed > 0
}

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

package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"github.com/wso2/mongo-collection-reconciler/internal/similarity"
	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
)

// Planner turns a snapshot of collection descriptors into a MergePlan.
// It performs no I/O; the caller feeds it the store listing.
type Planner struct {
	Threshold      float64
	DomainPrefixes []string
}

func NewPlanner(threshold float64, domainPrefixes []string) *Planner {
	if threshold <= 0 {
		threshold = similarity.DefaultThreshold
	}
	return &Planner{
		Threshold:      threshold,
		DomainPrefixes: domainPrefixes,
	}
}

// BuildPlan groups near-duplicate names, selects a canonical survivor
// per group and emits the merge-before-drop operations. Grouping is the
// transitive closure of the pairwise "similar" relation, so chained
// duplicates (A~B, B~C) land in one group even when A~C scores below
// the threshold.
func (p *Planner) BuildPlan(collections []model.CollectionInfo) *model.MergePlan {
	plan := &model.MergePlan{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Threshold: p.Threshold,
	}

	uf := newUnionFind(len(collections))
	flagged := make(map[int][]model.SimilarityPair)

	for i := 0; i < len(collections); i++ {
		for j := i + 1; j < len(collections); j++ {
			score := similarity.Score(collections[i].Name, collections[j].Name)
			if score < p.Threshold {
				continue
			}
			uf.union(i, j)
			root := uf.find(i)
			flagged[root] = append(flagged[root], model.SimilarityPair{
				A:     collections[i].Name,
				B:     collections[j].Name,
				Score: score,
			})
		}
	}

	// Pairs recorded before later unions may sit under a stale root.
	// Re-key everything by final root.
	pairsByRoot := make(map[int][]model.SimilarityPair)
	for root, pairs := range flagged {
		final := uf.find(root)
		pairsByRoot[final] = append(pairsByRoot[final], pairs...)
	}

	membersByRoot := make(map[int][]model.CollectionInfo)
	for i, c := range collections {
		root := uf.find(i)
		membersByRoot[root] = append(membersByRoot[root], c)
	}

	roots := make([]int, 0, len(membersByRoot))
	for root, members := range membersByRoot {
		if len(members) > 1 {
			roots = append(roots, root)
		}
	}
	sort.Ints(roots)

	grouped := make(map[string]bool)
	for _, root := range roots {
		group := p.buildGroup(membersByRoot[root], pairsByRoot[root])
		for _, m := range group.Members {
			grouped[m.Name] = true
		}
		plan.Groups = append(plan.Groups, group)
	}

	plan.Advisories = p.namingAdvisories(collections, grouped)
	return plan
}

// buildGroup selects the canonical member and derives the operations
// that converge the group onto it.
func (p *Planner) buildGroup(members []model.CollectionInfo, pairs []model.SimilarityPair) model.DuplicateGroup {
	sort.Slice(members, func(i, j int) bool {
		if members[i].DocCount != members[j].DocCount {
			return members[i].DocCount > members[j].DocCount
		}
		return members[i].Name < members[j].Name
	})
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	group := model.DuplicateGroup{
		Members: members,
		Pairs:   pairs,
	}

	canonical, reason, ok := p.selectCanonical(members)
	if !ok {
		group.Unresolved = true
		group.Reason = reason
		return group
	}
	group.Canonical = canonical
	group.Reason = reason

	for _, m := range members {
		if m.Name == canonical {
			continue
		}
		if m.DocCount == 0 {
			group.Operations = append(group.Operations, model.Operation{
				Kind: model.OpDrop,
				From: m.Name,
			})
			continue
		}
		group.Operations = append(group.Operations, model.Operation{
			Kind: model.OpMergeInto,
			From: m.Name,
			To:   canonical,
		})
	}
	return group
}

// selectCanonical applies the survivor policy: most documents wins;
// ties fall through domain prefix, lowercase form, then shortest name.
// An exact tie on every criterion needs a human naming decision.
func (p *Planner) selectCanonical(members []model.CollectionInfo) (string, string, bool) {
	maxCount := members[0].DocCount
	for _, m := range members {
		if m.DocCount > maxCount {
			maxCount = m.DocCount
		}
	}

	candidates := make([]model.CollectionInfo, 0, len(members))
	for _, m := range members {
		if m.DocCount == maxCount {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 1 {
		return candidates[0].Name, "most documents", true
	}

	candidates = narrow(candidates, func(m model.CollectionInfo) bool {
		return p.hasDomainPrefix(m.Name)
	})
	if len(candidates) == 1 {
		return candidates[0].Name, "document count tied; has domain prefix", true
	}

	candidates = narrow(candidates, func(m model.CollectionInfo) bool {
		return m.Name == strings.ToLower(m.Name)
	})
	if len(candidates) == 1 {
		return candidates[0].Name, "document count tied; already lowercase", true
	}

	minLen := len(candidates[0].Name)
	for _, m := range candidates {
		if len(m.Name) < minLen {
			minLen = len(m.Name)
		}
	}
	candidates = narrow(candidates, func(m model.CollectionInfo) bool {
		return len(m.Name) == minLen
	})
	if len(candidates) == 1 {
		return candidates[0].Name, "document count tied; shortest name", true
	}

	return "", syserrors.AMBIGUOUS_GROUP.Description, false
}

// narrow keeps the members matching the predicate, unless none match,
// in which case the tie-breaker is inconclusive and the set survives.
func narrow(members []model.CollectionInfo, keep func(model.CollectionInfo) bool) []model.CollectionInfo {
	matched := make([]model.CollectionInfo, 0, len(members))
	for _, m := range members {
		if keep(m) {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return members
	}
	return matched
}

func (p *Planner) hasDomainPrefix(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range p.DomainPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// namingAdvisories proposes lowercase renames for non-duplicate
// collections that violate the lowercase rule. Advisories are reported
// but stay out of the destructive operation set unless the operator
// opts in.
func (p *Planner) namingAdvisories(collections []model.CollectionInfo, grouped map[string]bool) []model.Operation {
	var advisories []model.Operation
	taken := make(map[string]bool)
	for _, c := range collections {
		taken[c.Name] = true
	}

	for _, c := range collections {
		if grouped[c.Name] {
			continue
		}
		suggested := strings.ToLower(c.Name)
		if suggested == c.Name {
			continue
		}
		if taken[suggested] {
			// The lowercase form already exists; that situation is a
			// duplicate-group concern, not a rename.
			continue
		}
		taken[suggested] = true
		advisories = append(advisories, model.Operation{
			Kind: model.OpRename,
			From: c.Name,
			To:   suggested,
		})
	}
	return advisories
}

// unionFind is a plain disjoint-set structure over member indices.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func defaultPlanner() *Planner {
	return NewPlanner(0.5, []string{"user", "system", "career", "api"})
}

func TestBuildPlan_CaseVariantsGrouped(t *testing.T) {
	p := defaultPlanner()
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: "apirequestlogs", DocCount: 10},
		{Name: "apiRequestLogs", DocCount: 0},
		{Name: "users", DocCount: 500},
	})

	require.Len(t, plan.Groups, 1)
	g := plan.Groups[0]
	assert.False(t, g.Unresolved)
	assert.Equal(t, "apirequestlogs", g.Canonical, "more documents wins")
	require.Len(t, g.Operations, 1)
	assert.Equal(t, model.OpDrop, g.Operations[0].Kind)
	assert.Equal(t, "apiRequestLogs", g.Operations[0].From)
}

func TestBuildPlan_TransitiveGrouping(t *testing.T) {
	// A~B and B~C exceed the threshold while A~C does not; all three
	// must land in a single group.
	p := defaultPlanner()
	a, bName, c := "userprofiles", "userprofilesarchive", "userprofilesarchivedatastore"
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: a, DocCount: 5},
		{Name: bName, DocCount: 3},
		{Name: c, DocCount: 1},
	})

	require.Len(t, plan.Groups, 1)
	assert.Len(t, plan.Groups[0].Members, 3)
}

func TestBuildPlan_MergeBeforeDropForNonEmptySources(t *testing.T) {
	p := defaultPlanner()
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: "careerpathways", DocCount: 30},
		{Name: "careerPathways", DocCount: 4},
	})

	require.Len(t, plan.Groups, 1)
	g := plan.Groups[0]
	assert.Equal(t, "careerpathways", g.Canonical)
	require.Len(t, g.Operations, 1)
	assert.Equal(t, model.OpMergeInto, g.Operations[0].Kind)
	assert.Equal(t, "careerPathways", g.Operations[0].From)
	assert.Equal(t, "careerpathways", g.Operations[0].To)
}

func TestBuildPlan_TieBreakers(t *testing.T) {
	tests := []struct {
		name      string
		input     []model.CollectionInfo
		canonical string
	}{
		{
			name: "prefix wins on count tie",
			input: []model.CollectionInfo{
				{Name: "skillsignals", DocCount: 5},
				{Name: "userskillsignals", DocCount: 5},
			},
			canonical: "userskillsignals",
		},
		{
			name: "lowercase wins on count and prefix tie",
			input: []model.CollectionInfo{
				{Name: "userActivity", DocCount: 5},
				{Name: "useractivity", DocCount: 5},
			},
			canonical: "useractivity",
		},
		{
			name: "shortest wins when still tied",
			input: []model.CollectionInfo{
				{Name: "usersessions", DocCount: 5},
				{Name: "usersessionss", DocCount: 5},
			},
			canonical: "usersessions",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := defaultPlanner().BuildPlan(tt.input)
			require.Len(t, plan.Groups, 1)
			require.False(t, plan.Groups[0].Unresolved)
			assert.Equal(t, tt.canonical, plan.Groups[0].Canonical)
		})
	}
}

func TestBuildPlan_AmbiguousGroupUnresolved(t *testing.T) {
	// Same count, both prefixed, both lowercase, same length: no
	// criterion can decide.
	p := defaultPlanner()
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: "userskilla", DocCount: 5},
		{Name: "userskillb", DocCount: 5},
	})

	require.Len(t, plan.Groups, 1)
	g := plan.Groups[0]
	assert.True(t, g.Unresolved)
	assert.Empty(t, g.Canonical)
	assert.Empty(t, g.Operations)
	assert.Equal(t, syserrors.AMBIGUOUS_GROUP.Description, g.Reason)
}

func TestBuildPlan_NoDuplicatesEmptyPlan(t *testing.T) {
	p := defaultPlanner()
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: "users", DocCount: 500},
		{Name: "careerpathways", DocCount: 30},
		{Name: "systemsettings", DocCount: 3},
	})

	assert.Empty(t, plan.Groups)
	assert.Empty(t, plan.Advisories)
	assert.True(t, plan.Empty())
}

func TestBuildPlan_NamingAdvisories(t *testing.T) {
	p := defaultPlanner()
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: "users", DocCount: 10},
		{Name: "systemAuditTrail", DocCount: 2},
	})

	assert.Empty(t, plan.Groups)
	require.Len(t, plan.Advisories, 1)
	assert.Equal(t, model.OpRename, plan.Advisories[0].Kind)
	assert.Equal(t, "systemAuditTrail", plan.Advisories[0].From)
	assert.Equal(t, "systemaudittrail", plan.Advisories[0].To)
	assert.False(t, plan.Empty())
}

func TestBuildPlan_ThresholdBoundary(t *testing.T) {
	// "skill" vs "skills": similarity 5/6; below a 0.9 threshold the
	// pair must not group.
	strict := NewPlanner(0.9, nil)
	plan := strict.BuildPlan([]model.CollectionInfo{
		{Name: "skill", DocCount: 1},
		{Name: "skills", DocCount: 2},
	})
	assert.Empty(t, plan.Groups)

	loose := NewPlanner(0.5, nil)
	plan = loose.BuildPlan([]model.CollectionInfo{
		{Name: "skill", DocCount: 1},
		{Name: "skills", DocCount: 2},
	})
	assert.Len(t, plan.Groups, 1)
}

func TestRenderPlan_ReportsGroupsAndAdvisories(t *testing.T) {
	p := defaultPlanner()
	plan := p.BuildPlan([]model.CollectionInfo{
		{Name: "apirequestlogs", DocCount: 10},
		{Name: "apiRequestLogs", DocCount: 0},
		{Name: "systemAuditTrail", DocCount: 2},
	})

	report := RenderPlan(plan, p.DomainPrefixes)
	assert.Contains(t, report, "canonical: apirequestlogs")
	assert.Contains(t, report, "drop apiRequestLogs")
	assert.Contains(t, report, "rename systemAuditTrail to systemaudittrail")
}

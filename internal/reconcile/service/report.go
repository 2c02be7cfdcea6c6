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
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
)

// RenderPlan produces the human-readable report for a planning pass:
// groups found, chosen canonical names and why, the operations that
// would run, and naming advisories.
func RenderPlan(plan *model.MergePlan, domainPrefixes []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reconciliation plan %s (threshold %.2f)\n", plan.RunID, plan.Threshold)
	fmt.Fprintf(&b, "Created at %s\n\n", plan.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	if plan.Empty() {
		b.WriteString("Nothing to do: no duplicate groups and no naming advisories.\n")
		return b.String()
	}

	for i, g := range plan.Groups {
		fmt.Fprintf(&b, "Group %d (%d members):\n", i+1, len(g.Members))
		for _, m := range g.Members {
			marker := " "
			if m.Name == g.Canonical {
				marker = "*"
			}
			fmt.Fprintf(&b, "  %s %-40s %8d docs\n", marker, m.Name, m.DocCount)
		}
		if g.Unresolved {
			fmt.Fprintf(&b, "  UNRESOLVED: %s\n", g.Reason)
		} else {
			fmt.Fprintf(&b, "  canonical: %s (%s)\n", g.Canonical, g.Reason)
			for _, op := range g.Operations {
				switch op.Kind {
				case model.OpDrop:
					fmt.Fprintf(&b, "  - drop %s (empty)\n", op.From)
				case model.OpMergeInto:
					fmt.Fprintf(&b, "  - merge %s into %s, then drop %s\n", op.From, op.To, op.From)
				case model.OpRename:
					fmt.Fprintf(&b, "  - rename %s to %s\n", op.From, op.To)
				}
			}
		}
		b.WriteString("\n")
	}

	if len(plan.Advisories) > 0 {
		b.WriteString("Naming advisories (not applied unless --renames is set):\n")
		for _, op := range plan.Advisories {
			fmt.Fprintf(&b, "  - rename %s to %s (lowercase convention)\n", op.From, op.To)
		}
		b.WriteString("\n")
	}

	missing := missingPrefix(plan, domainPrefixes)
	if len(missing) > 0 {
		fmt.Fprintf(&b, "Collections without a domain prefix (%s); pick one manually:\n",
			strings.Join(domainPrefixes, ", "))
		for _, name := range missing {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%d group(s) resolvable, %d unresolved, %d naming advisories\n",
		plan.ResolvedGroups(), plan.UnresolvedGroups(), len(plan.Advisories))
	return b.String()
}

// RenderSummary produces the final line-oriented apply summary.
func RenderSummary(summary *model.ApplySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Apply run %s finished in %s\n",
		summary.RunID, summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(&b, "%d groups resolved, %d groups unresolved, %d documents skipped\n",
		summary.GroupsResolved, summary.GroupsUnresolved, summary.DocumentsSkipped)
	fmt.Fprintf(&b, "%d documents copied, %d collections dropped, %d renamed (%d rename failures)\n",
		summary.DocumentsCopied, summary.CollectionsDropped, summary.CollectionsRenamed, summary.RenamesFailed)
	return b.String()
}

// WriteJSONReport writes v as indented JSON to path.
func WriteJSONReport(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// missingPrefix lists collection names, canonical and advisory targets
// included, that start with none of the configured domain prefixes.
func missingPrefix(plan *model.MergePlan, domainPrefixes []string) []string {
	if len(domainPrefixes) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var missing []string

	check := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		lower := strings.ToLower(name)
		for _, prefix := range domainPrefixes {
			if strings.HasPrefix(lower, strings.ToLower(prefix)) {
				return
			}
		}
		missing = append(missing, name)
	}

	for _, g := range plan.Groups {
		check(g.Canonical)
	}
	for _, op := range plan.Advisories {
		check(op.To)
	}
	return missing
}

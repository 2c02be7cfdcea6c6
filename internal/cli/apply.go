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

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/service"
	"github.com/wso2/mongo-collection-reconciler/internal/system/config"
	"github.com/wso2/mongo-collection-reconciler/internal/system/constants"
	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/system/lock"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
)

// applyReport is the JSON report payload for an apply run.
type applyReport struct {
	Plan    *model.MergePlan    `json:"plan"`
	Summary *model.ApplySummary `json:"summary"`
}

func newApplyCmd() *cobra.Command {
	var (
		yes        bool
		renames    bool
		reportPath string
	)

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Execute the reconciliation plan against the database",
		Long: `apply recomputes the plan, asks for confirmation, then merges and
drops duplicate collections. Non-empty sources are merged into the
canonical collection before being dropped; documents that fail to copy
are skipped and keep their source collection alive for a re-run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := setup(); err != nil {
				return err
			}
			cfg := &config.GetRuntime().Config

			ctx := cmd.Context()
			mc, st, err := connectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = mc.Close(context.Background()) }()

			plan, err := buildPlan(ctx, cfg, st)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), service.RenderPlan(plan, domainPrefixes(cfg)))

			if plan.Empty() {
				return nil
			}
			if !yes && !confirm(cmd) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted; nothing was changed.")
				return nil
			}

			logger := log.GetLogger()
			var runLock lock.RunLock = lock.NewMongoLock(mc.Database)
			ttl := time.Duration(cfg.Reconcile.LockTTLMinutes) * time.Minute

			acquired, err := runLock.Acquire(ctx, constants.ReconcileLockKey, plan.RunID, ttl)
			if err != nil {
				return syserrors.NewFatalError(syserrors.LOCK_ACQUIRE, 2, err)
			}
			if !acquired {
				return exitError(1, fmt.Errorf("another reconciliation run holds the lock %q; retry later", constants.ReconcileLockKey))
			}
			defer func() {
				if releaseErr := runLock.Release(context.Background(), constants.ReconcileLockKey, plan.RunID); releaseErr != nil {
					logger.Error("Failed to release the run lock",
						log.String("code", syserrors.LOCK_RELEASE.Code),
						log.Error(releaseErr))
				}
			}()

			summary, applyErr := service.NewExecutor(st).Apply(ctx, plan, renames)
			fmt.Fprint(cmd.OutOrStdout(), service.RenderSummary(summary))

			if reportPath != "" {
				if err := service.WriteJSONReport(reportPath, &applyReport{Plan: plan, Summary: summary}); err != nil {
					logger.Error("Failed to write the apply report",
						log.String("code", syserrors.WRITE_REPORT.Code),
						log.Error(err))
				}
			}

			if applyErr != nil {
				return exitError(1, fmt.Errorf("apply interrupted: %w", applyErr))
			}
			if summary.Failed() {
				return exitError(1, fmt.Errorf("%d group(s) unresolved, %d document(s) skipped, %d rename(s) failed",
					summary.GroupsUnresolved, summary.DocumentsSkipped, summary.RenamesFailed))
			}
			return nil
		},
	}

	applyCmd.Flags().BoolVar(&yes, "yes", false, "Skip the interactive confirmation")
	applyCmd.Flags().BoolVar(&renames, "renames", false, "Also apply lowercase naming advisories")
	applyCmd.Flags().StringVar(&reportPath, "report", "", "Write the plan and summary as JSON to this path")
	return applyCmd
}

// confirm asks for an explicit "yes" on the command input. Anything else
// aborts the run.
func confirm(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "Apply these changes? Type \"yes\" to continue: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

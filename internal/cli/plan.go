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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/service"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/store"
	"github.com/wso2/mongo-collection-reconciler/internal/system/config"
	"github.com/wso2/mongo-collection-reconciler/internal/system/database/client"
	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
)

func newPlanCmd() *cobra.Command {
	var reportPath string

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute and print the reconciliation plan without changing anything",
		Args:  cobra.NoArgs,
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

			if reportPath != "" {
				if err := service.WriteJSONReport(reportPath, plan); err != nil {
					return syserrors.NewFatalError(syserrors.WRITE_REPORT, 1, err)
				}
				log.GetLogger().Info("Plan report written", log.String("path", reportPath))
			}
			return nil
		},
	}

	planCmd.Flags().StringVar(&reportPath, "report", "", "Write the plan as JSON to this path")
	return planCmd
}

// connectStore opens the MongoDB connection described by the config and
// wraps it in a CollectionStore.
func connectStore(ctx context.Context, cfg *config.Config) (*client.MongoClient, store.CollectionStore, error) {
	timeout := time.Duration(cfg.Store.ConnectTimeoutSeconds) * time.Second
	mc, err := client.Connect(ctx, cfg.Store.URI, cfg.Store.Database, timeout)
	if err != nil {
		return nil, nil, err
	}
	return mc, store.NewMongoStore(mc.Client, cfg.Store.Database), nil
}

// buildPlan snapshots the collection inventory and runs the planner
// over it.
func buildPlan(ctx context.Context, cfg *config.Config, st store.CollectionStore) (*model.MergePlan, error) {
	cols, err := st.ListCollections(ctx)
	if err != nil {
		return nil, syserrors.NewFatalError(syserrors.LIST_COLLECTIONS, 2, err)
	}
	log.GetLogger().Debug("Collection inventory loaded",
		log.Int("collections", len(cols)),
		log.Float("threshold", cfg.Reconcile.SimilarityThreshold))

	planner := service.NewPlanner(cfg.Reconcile.SimilarityThreshold, domainPrefixes(cfg))
	return planner.BuildPlan(cols), nil
}

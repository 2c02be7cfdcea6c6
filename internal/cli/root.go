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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wso2/mongo-collection-reconciler/internal/system/config"
	"github.com/wso2/mongo-collection-reconciler/internal/system/constants"
	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
)

var configPath string

// codedError carries a process exit code through cobra's error return.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func exitError(code int, err error) error {
	return &codedError{code: code, err: err}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reconciler",
		Short: "Detect and merge near-duplicate MongoDB collection names",
		Long: `reconciler converges a MongoDB database onto one collection name per
concept. It scores collection names with normalized Levenshtein
similarity, groups transitive duplicates, picks a canonical survivor
per group, and merges the rest into it before dropping them.

"plan" is read-only and always safe. "apply" mutates the database and
requires explicit confirmation; run it in a maintenance window.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.DefaultConfigPath,
		"Path to the yaml configuration file")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newApplyCmd())
	return rootCmd
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 1 on partial failure during apply, 2 on connection or configuration
// failure.
func Execute(ctx context.Context) int {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		if coded, ok := err.(*codedError); ok {
			return coded.code
		}
		var fatal *syserrors.FatalError
		if errors.As(err, &fatal) {
			return fatal.ExitCode
		}
		return 1
	}
	return 0
}

// setup loads the environment, configuration and logger, and seeds the
// runtime singleton. Subcommands read configuration back through
// config.GetRuntime after this returns.
func setup() error {
	if envFiles, err := filepath.Glob("config/*.env"); err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return exitError(2, fmt.Errorf("failed to load config %s: %w", configPath, err))
	}
	if err := cfg.Validate(); err != nil {
		return exitError(2, syserrors.NewFatalError(syserrors.INVALID_CONFIG, 2, err))
	}

	if err := log.Init(cfg.Log.LogLevel); err != nil {
		return exitError(2, err)
	}
	return config.InitializeRuntime(cfg)
}

// domainPrefixes resolves the configured prefixes with the built-in
// default.
func domainPrefixes(cfg *config.Config) []string {
	if len(cfg.Reconcile.DomainPrefixes) > 0 {
		return cfg.Reconcile.DomainPrefixes
	}
	return constants.DefaultDomainPrefixes
}

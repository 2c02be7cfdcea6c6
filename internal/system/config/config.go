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

package config

import "fmt"

type StoreConfig struct {
	URI                   string `yaml:"uri"`
	Database              string `yaml:"database"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds"`
}

type ReconcileConfig struct {
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	DomainPrefixes      []string `yaml:"domain_prefixes"`
	LockTTLMinutes      int      `yaml:"lock_ttl_minutes"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Log       LogConfig       `yaml:"log"`
}

// Validate checks the configuration before any store connection is made.
// The connection string must come from the config file or the environment;
// there is no built-in default.
func (c *Config) Validate() error {
	if c.Store.URI == "" {
		return fmt.Errorf("store.uri is required (set it in the config file or via MONGODB_URI)")
	}
	if c.Store.Database == "" {
		return fmt.Errorf("store.database is required")
	}
	if c.Reconcile.SimilarityThreshold < 0 || c.Reconcile.SimilarityThreshold > 1 {
		return fmt.Errorf("reconcile.similarity_threshold must be within [0,1], got %v", c.Reconcile.SimilarityThreshold)
	}
	return nil
}

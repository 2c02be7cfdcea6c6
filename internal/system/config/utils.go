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

import (
	"os"

	"github.com/wso2/mongo-collection-reconciler/internal/similarity"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the yaml configuration file, expanding ${VAR}
// references from the environment before unmarshalling.
func LoadConfig(filePath string) (*Config, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.Reconcile.SimilarityThreshold == 0 {
		cfg.Reconcile.SimilarityThreshold = similarity.DefaultThreshold
	}
	if cfg.Store.ConnectTimeoutSeconds == 0 {
		cfg.Store.ConnectTimeoutSeconds = 10
	}
	if cfg.Reconcile.LockTTLMinutes == 0 {
		cfg.Reconcile.LockTTLMinutes = 30
	}
	// MONGODB_URI always wins over the file so automation can target a
	// store without editing yaml.
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		cfg.Store.URI = uri
	}
}

// OverrideRuntime replaces the runtime configuration. Used by tests.
func OverrideRuntime(conf Config) {
	runtimeConfig = &ReconcilerRuntime{Config: conf}
}

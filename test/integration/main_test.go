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

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/wso2/mongo-collection-reconciler/internal/system/config"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
	"github.com/wso2/mongo-collection-reconciler/test/setup"
)

var testMongo *setup.TestMongo

func TestMain(m *testing.M) {
	ctx := context.Background()

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "DEBUG",
		},
		Reconcile: config.ReconcileConfig{
			SimilarityThreshold: 0.5,
			DomainPrefixes:      []string{"user", "system", "career", "api"},
			LockTTLMinutes:      30,
		},
	}
	config.OverrideRuntime(conf)
	_ = log.Init("ERROR")

	mongoEnv, err := setup.SetupTestMongo(ctx)
	if err != nil {
		fmt.Println("Failed to start test Mongo:", err)
		os.Exit(1)
	}
	testMongo = mongoEnv

	code := m.Run()

	_ = testMongo.Client.Disconnect(ctx)
	_ = testMongo.Container.Terminate(ctx)

	os.Exit(code)
}

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

package constants

const DefaultConfigPath = "config/deployment.yaml"

// ReconcileLockKey is the _id of the run-lock document; a single key
// serializes apply runs against one database.
const ReconcileLockKey = "collection_reconcile"

// DefaultDomainPrefixes are the prefixes a compliant collection name is
// expected to start with when the config does not override them.
var DefaultDomainPrefixes = []string{"user", "system", "career"}

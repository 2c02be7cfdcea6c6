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

package lock

import (
	"context"
	"time"
)

// RunLock serializes destructive reconciliation runs against a single
// database. It formalizes the maintenance-window precondition: apply
// refuses to start while another run holds the lock.
type RunLock interface {
	// Acquire takes the lock for owner with the given TTL. Returns
	// false when another live owner already holds it.
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)

	// Release frees the lock if owner still holds it.
	Release(ctx context.Context, key, owner string) error
}

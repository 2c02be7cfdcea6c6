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

package store

import (
	"context"
	"errors"

	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrTargetExists is returned by Rename when the target collection
// already exists and overwrite was not requested.
var ErrTargetExists = errors.New("rename target collection already exists")

// CollectionStore is the narrow surface the reconciler needs from a
// document store. Implementations must be safe for sequential use from
// a single goroutine; the driver never calls them concurrently.
type CollectionStore interface {
	// ListCollections returns every user collection with its current
	// document count.
	ListCollections(ctx context.Context) ([]model.CollectionInfo, error)

	// CountDocuments returns the exact document count of one collection.
	CountDocuments(ctx context.Context, name string) (int64, error)

	// Exists reports whether the named collection currently exists.
	Exists(ctx context.Context, name string) (bool, error)

	// EachDocument streams every document of the named collection to fn
	// in store order. Iteration stops on the first error returned by fn
	// or when ctx is cancelled. The sequence is finite and restartable.
	EachDocument(ctx context.Context, name string, fn func(doc bson.M) error) error

	// Insert writes a single document; the store assigns its identity.
	Insert(ctx context.Context, name string, doc bson.M) error

	// DeleteDocument removes one document from the named collection by
	// its store identity. Deleting an absent document is not an error.
	DeleteDocument(ctx context.Context, name string, id interface{}) error

	// Rename renames a collection. Without overwrite it fails with
	// ErrTargetExists when the target is present.
	Rename(ctx context.Context, from, to string, overwrite bool) error

	// Drop removes the named collection.
	Drop(ctx context.Context, name string) error
}

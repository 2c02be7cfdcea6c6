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
	"context"
	"fmt"
	"sort"

	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/store"
	"go.mongodb.org/mongo-driver/bson"
)

// memoryStore is an in-memory CollectionStore for unit tests. insertErr
// and deleteErr let a test inject per-document failures.
type memoryStore struct {
	collections map[string][]bson.M
	nextID      int
	insertErr   func(name string, doc bson.M) error
	deleteErr   func(name string, id interface{}) error
}

func newMemoryStore(seed map[string][]bson.M) *memoryStore {
	collections := make(map[string][]bson.M, len(seed))
	for name, docs := range seed {
		collections[name] = append([]bson.M{}, docs...)
	}
	return &memoryStore{collections: collections}
}

func (m *memoryStore) ListCollections(_ context.Context) ([]model.CollectionInfo, error) {
	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]model.CollectionInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, model.CollectionInfo{
			Name:     name,
			DocCount: int64(len(m.collections[name])),
		})
	}
	return infos, nil
}

func (m *memoryStore) CountDocuments(_ context.Context, name string) (int64, error) {
	return int64(len(m.collections[name])), nil
}

func (m *memoryStore) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.collections[name]
	return ok, nil
}

func (m *memoryStore) EachDocument(ctx context.Context, name string, fn func(doc bson.M) error) error {
	for _, doc := range append([]bson.M{}, m.collections[name]...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		copied := bson.M{}
		for k, v := range doc {
			copied[k] = v
		}
		if err := fn(copied); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryStore) Insert(_ context.Context, name string, doc bson.M) error {
	if m.insertErr != nil {
		if err := m.insertErr(name, doc); err != nil {
			return err
		}
	}
	m.nextID++
	doc["_id"] = fmt.Sprintf("mem-%d", m.nextID)
	m.collections[name] = append(m.collections[name], doc)
	return nil
}

func (m *memoryStore) DeleteDocument(_ context.Context, name string, id interface{}) error {
	if m.deleteErr != nil {
		if err := m.deleteErr(name, id); err != nil {
			return err
		}
	}
	docs := m.collections[name]
	for i, doc := range docs {
		if doc["_id"] == id {
			m.collections[name] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryStore) Rename(_ context.Context, from, to string, overwrite bool) error {
	if _, ok := m.collections[from]; !ok {
		return fmt.Errorf("source collection %s does not exist", from)
	}
	if _, ok := m.collections[to]; ok && !overwrite {
		return store.ErrTargetExists
	}
	m.collections[to] = m.collections[from]
	delete(m.collections, from)
	return nil
}

func (m *memoryStore) Drop(_ context.Context, name string) error {
	delete(m.collections, name)
	return nil
}

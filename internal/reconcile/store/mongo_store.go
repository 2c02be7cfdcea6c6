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
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements CollectionStore against a MongoDB database.
type MongoStore struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoStore creates a store bound to one database.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (s *MongoStore) ListCollections(ctx context.Context) ([]model.CollectionInfo, error) {
	names, err := s.Database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list collection names")
	}
	sort.Strings(names)

	infos := make([]model.CollectionInfo, 0, len(names))
	for _, name := range names {
		count, err := s.CountDocuments(ctx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to count documents in %s", name)
		}
		infos = append(infos, model.CollectionInfo{Name: name, DocCount: count})
	}
	return infos, nil
}

func (s *MongoStore) CountDocuments(ctx context.Context, name string) (int64, error) {
	return s.Database.Collection(name).CountDocuments(ctx, bson.M{})
}

func (s *MongoStore) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.Database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, errors.Wrapf(err, "failed to check existence of %s", name)
	}
	return len(names) > 0, nil
}

func (s *MongoStore) EachDocument(ctx context.Context, name string, fn func(doc bson.M) error) error {
	cursor, err := s.Database.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return errors.Wrapf(err, "failed to open cursor on %s", name)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return errors.Wrapf(err, "failed to decode document from %s", name)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return errors.Wrapf(cursor.Err(), "cursor error on %s", name)
}

func (s *MongoStore) Insert(ctx context.Context, name string, doc bson.M) error {
	_, err := s.Database.Collection(name).InsertOne(ctx, doc)
	return err
}

func (s *MongoStore) DeleteDocument(ctx context.Context, name string, id interface{}) error {
	_, err := s.Database.Collection(name).DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrapf(err, "failed to delete document from %s", name)
}

func (s *MongoStore) Rename(ctx context.Context, from, to string, overwrite bool) error {
	if !overwrite {
		exists, err := s.Exists(ctx, to)
		if err != nil {
			return err
		}
		if exists {
			return ErrTargetExists
		}
	}

	cmd := bson.D{
		{Key: "renameCollection", Value: fmt.Sprintf("%s.%s", s.Database.Name(), from)},
		{Key: "to", Value: fmt.Sprintf("%s.%s", s.Database.Name(), to)},
		{Key: "dropTarget", Value: overwrite},
	}
	if err := s.Client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		if cmdErr, ok := err.(mongo.CommandError); ok && cmdErr.Code == 48 {
			// NamespaceExists: the target appeared between the check and
			// the command.
			return ErrTargetExists
		}
		return errors.Wrapf(err, "failed to rename %s to %s", from, to)
	}
	return nil
}

func (s *MongoStore) Drop(ctx context.Context, name string) error {
	return errors.Wrapf(s.Database.Collection(name).Drop(ctx), "failed to drop %s", name)
}

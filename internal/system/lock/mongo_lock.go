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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLock implements RunLock on a dedicated locks collection. The
// unique _id index makes the insert an atomic take.
type MongoLock struct {
	Collection *mongo.Collection
}

func NewMongoLock(db *mongo.Database) *MongoLock {
	return &MongoLock{
		Collection: db.Collection("system_locks"),
	}
}

func (l *MongoLock) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	doc := bson.M{
		"_id":        key,
		"owner":      owner,
		"created_at": now,
		"expires_at": now.Add(ttl),
	}

	_, err := l.Collection.InsertOne(ctx, doc)
	if err == nil {
		return true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return false, err
	}

	// A holder exists. Steal it only if its TTL has lapsed.
	res, err := l.Collection.DeleteOne(ctx, bson.M{
		"_id":        key,
		"expires_at": bson.M{"$lt": now},
	})
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 0 {
		return false, nil
	}

	_, err = l.Collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race to another reconciler.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *MongoLock) Release(ctx context.Context, key, owner string) error {
	_, err := l.Collection.DeleteOne(ctx, bson.M{"_id": key, "owner": owner})
	return err
}

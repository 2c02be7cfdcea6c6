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

package client

import (
	"context"
	"time"

	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient holds the driver client and the target database handle.
type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect establishes and pings a MongoDB connection. A failure here is
// fatal for the run; the caller maps it to exit code 2 and no mutation
// has happened yet.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*MongoClient, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	mongoClient, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, syserrors.NewFatalError(syserrors.DB_CLIENT_INIT, 2, err)
	}

	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, syserrors.NewFatalError(syserrors.DB_CLIENT_INIT, 2, err)
	}

	log.GetLogger().Debug("Connected to MongoDB", log.String("database", dbName))

	return &MongoClient{
		Client:   mongoClient,
		Database: mongoClient.Database(dbName),
	}, nil
}

// Close disconnects the underlying driver client.
func (c *MongoClient) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}

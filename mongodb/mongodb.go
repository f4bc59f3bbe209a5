package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDBConn struct {
	Client *mongo.Client
	opts   *options.ClientOptions
	dbName string
}

func (db *MongoDBConn) Connect(ctx context.Context) error {

	client, err := mongo.Connect(ctx, db.opts)
	if err != nil {
		return err
	}

	db.Client = client

	return nil
}

func (db *MongoDBConn) Disconnect(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

func (db *MongoDBConn) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *MongoDBConn) GetDatabase() *mongo.Database {
	return db.Client.Database(db.dbName)
}

func (db *MongoDBConn) GetCollection(collectionName string) *mongo.Collection {
	return db.GetDatabase().Collection(collectionName)
}

func New(uri string, dbName string) MongoDBConn {

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	return MongoDBConn{
		opts:   opts,
		dbName: dbName,
	}
}

func InitConnection(ctx context.Context, uri string, dbName string) (*MongoDBConn, error) {

	mongodbConn := New(uri, dbName)
	if err := mongodbConn.Connect(ctx); err != nil {
		return nil, err
	}

	if err := mongodbConn.Ping(ctx); err != nil {
		_ = mongodbConn.Disconnect(ctx)
		return nil, err
	}

	return &mongodbConn, nil
}

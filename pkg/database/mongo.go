package database

import (
	"context"
	"time"

	"chatbot-go/pkg/log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
)

// InitMongo 初始化 MongoDB 连接并选定数据库。
func InitMongo(uri, database string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("failed to connect to mongodb", err)
	}

	// 测试连接
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("failed to ping mongodb", err)
	}

	MongoClient = client
	MongoDB = client.Database(database)

	log.Info("MongoDB connected successfully")
}

// CloseMongo 断开 MongoDB 连接，在优雅停机时调用。
func CloseMongo(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect mongodb", err)
	}
}

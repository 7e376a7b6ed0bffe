// Package db mantiene la conexión global a Mongo. Los repos piden la base
// con DB(); nadie más toca el cliente.
package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veneneux711/steam-game-recommendation/internal/config"
)

var (
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

// InitMongo conecta y hace ping; si Mongo no está, no hay nada que servir,
// así que el fallo es fatal.
func InitMongo(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("[mongo] error conectando: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("[mongo] ping falló: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Printf("[mongo] conectado a %s / DB=%s", cfg.MongoURI, cfg.MongoDB)
}

func DB() *mongo.Database {
	return mongoDB
}

// Disconnect cierra el cliente (lo usa el ETL al terminar).
func Disconnect(ctx context.Context) {
	if mongoClient == nil {
		return
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Printf("[mongo] error cerrando conexión: %v", err)
	}
}

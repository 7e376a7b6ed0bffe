package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veneneux711/steam-game-recommendation/internal/db"
	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

// ReviewRepository lee la tabla histórica de votos de otros usuarios
// (colección `reviews`). Es solo lectura en runtime; solo el ETL escribe.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{col: db.DB().Collection("reviews")}
}

// NeighborUserIDs devuelve los usuarios cuyo overlap con mis juegos
// valorados alcanza el umbral. El conteo se hace en Mongo con un
// pipeline para no traer la colección entera.
func (r *ReviewRepository) NeighborUserIDs(ctx context.Context, gameIDs []int, threshold int) ([]int, error) {
	if len(gameIDs) == 0 || threshold <= 0 {
		return []int{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"appId": bson.M{"$in": gameIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$userId",
			"overlap": bson.M{"$sum": 1},
		}}},
		{{Key: "$match", Value: bson.M{"overlap": bson.M{"$gte": threshold}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []int
	for cur.Next(ctx) {
		var row struct {
			UserID int `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, row.UserID)
	}
	if out == nil {
		out = []int{}
	}
	return out, cur.Err()
}

// ByUsers devuelve TODOS los votos de los usuarios dados (no solo los
// del overlap): el motor necesita el historial completo de cada vecino.
func (r *ReviewRepository) ByUsers(ctx context.Context, userIDs []int) ([]models.ReviewDoc, error) {
	if len(userIDs) == 0 {
		return []models.ReviewDoc{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ReviewDoc
	for cur.Next(ctx) {
		var d models.ReviewDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if out == nil {
		out = []models.ReviewDoc{}
	}
	return out, cur.Err()
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// ReplaceAll borra e inserta el histórico completo (lo usa el ETL).
// Inserta por lotes para no armar un solo InsertMany gigante.
func (r *ReviewRepository) ReplaceAll(ctx context.Context, reviews []models.ReviewDoc) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	const batch = 5000
	for start := 0; start < len(reviews); start += batch {
		end := start + batch
		if end > len(reviews) {
			end = len(reviews)
		}
		docs := make([]any, 0, end-start)
		for _, d := range reviews[start:end] {
			docs = append(docs, d)
		}
		if _, err := r.col.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}

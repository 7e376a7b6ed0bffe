// internal/repository/game_repo.go
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veneneux711/steam-game-recommendation/internal/db"
	"github.com/veneneux711/steam-game-recommendation/internal/models"
)

type GameRepository struct {
	col *mongo.Collection
}

func NewGameRepository() *GameRepository {
	return &GameRepository{col: db.DB().Collection("games")}
}

func (r *GameRepository) GetByID(ctx context.Context, appID int) (*models.GameDoc, error) {
	var g models.GameDoc
	err := r.col.FindOne(ctx, bson.M{"appId": appID}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &g, err
}

func (r *GameRepository) Search(
	ctx context.Context,
	q string,
	genre string,
	limit, offset int,
) ([]models.GameDoc, error) {

	filter := bson.M{}

	if q != "" {
		filter["name"] = bson.M{"$regex": q, "$options": "i"}
	}
	if genre != "" {
		// genres es un array, esto busca que contenga ese género
		filter["genres"] = genre
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GameDoc
	for cur.Next(ctx) {
		var g models.GameDoc
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

// Top por cantidad de reseñas (positive + negative). El total no está
// materializado en el documento, así que se calcula en el pipeline.
func (r *GameRepository) Top(ctx context.Context, limit int) ([]models.GameDoc, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"totalReviews": bson.M{"$add": bson.A{"$positive", "$negative"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalReviews", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GameDoc
	for cur.Next(ctx) {
		var g models.GameDoc
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

// All devuelve el catálogo completo (lo consume el entrenamiento).
func (r *GameRepository) All(ctx context.Context) ([]models.GameDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GameDoc
	for cur.Next(ctx) {
		var g models.GameDoc
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, cur.Err()
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// ReplaceAll borra e inserta el catálogo completo (lo usa el ETL).
func (r *GameRepository) ReplaceAll(ctx context.Context, games []models.GameDoc) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}
	docs := make([]any, len(games))
	for i := range games {
		docs[i] = games[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

package models

// Valores discretos de review para el motor colaborativo.
const (
	ReviewLike       = 1.0
	ReviewInterested = 0.5
	ReviewNeutral    = -0.5
	ReviewDislike    = -1.0
)

// UserGameRating es una valoración del usuario activo para el motor KNN.
// Se persiste como snapshot plano (your_games.csv), sin historial.
type UserGameRating struct {
	GameID   int     `json:"gameId"`
	GameName string  `json:"gameName"`
	Review   float64 `json:"review"`
}

// ContentRating es la valoración 1-5 del motor content-based.
// Escala independiente y archivo independiente (cb_ratings.json).
type ContentRating struct {
	AppID  int    `json:"appId"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// ReviewDoc es un voto histórico de otro usuario (colección `reviews`).
// Tabla de solo lectura: este sistema nunca la muta.
type ReviewDoc struct {
	UserID      int  `json:"userId" bson:"userId"`
	AppID       int  `json:"appId" bson:"appId"`
	Recommended bool `json:"recommended" bson:"recommended"`
}

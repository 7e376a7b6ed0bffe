package models

import "time"

// KNNItem es una fila del ranking del motor colaborativo,
// enriquecida con metadata del catálogo para que el merger la consuma.
type KNNItem struct {
	AppID       int     `json:"appId" bson:"appId"`
	Title       string  `json:"title" bson:"title"`
	Relevance   float64 `json:"relevance" bson:"relevance"`
	Release     string  `json:"release,omitempty" bson:"release,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	UserReviews int     `json:"userReviews" bson:"userReviews"`
}

// CBItem es una fila del ranking del motor content-based.
// Score es el score final mezclado; Similarity es el coseno crudo
// (se conserva por transparencia).
type CBItem struct {
	AppID      int     `json:"appId" bson:"appId"`
	Name       string  `json:"name" bson:"name"`
	Score      float64 `json:"score" bson:"score"`
	Similarity float64 `json:"similarity" bson:"similarity"`
	Price      float64 `json:"price" bson:"price"`
}

// HybridItem es una fila del ranking final.
// KNNScore y CBScore son los scores normalizados [0,1] de cada componente
// (0 cuando el motor no encontró el juego).
type HybridItem struct {
	Rank        int     `json:"rank" bson:"rank"`
	AppID       int     `json:"appId" bson:"appId"`
	Title       string  `json:"title" bson:"title"`
	HybridScore float64 `json:"hybridScore" bson:"hybridScore"`
	KNNScore    float64 `json:"knnScore" bson:"knnScore"`
	CBScore     float64 `json:"cbScore" bson:"cbScore"`
}

// Recommendation guarda en Mongo el historial de cada corrida híbrida.
type Recommendation struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	UserID    int          `bson:"userId" json:"userId"`
	Algo      string       `bson:"algo" json:"algo"`
	Params    any          `bson:"params" json:"params"`
	Items     []HybridItem `bson:"items" json:"items"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
}

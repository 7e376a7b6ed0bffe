package models

// GameDoc es la ficha de un juego en el catálogo (colección `games`).
// Tags viene ordenado: los primeros tags son los más representativos.
type GameDoc struct {
	AppID    int      `json:"appId" bson:"appId"`
	Name     string   `json:"name" bson:"name"`
	Release  string   `json:"release,omitempty" bson:"release,omitempty"`
	Price    float64  `json:"price" bson:"price"`
	Positive int      `json:"positive" bson:"positive"`
	Negative int      `json:"negative" bson:"negative"`
	Genres   []string `json:"genres" bson:"genres"`
	Tags     []string `json:"tags" bson:"tags"`
}

// TotalReviews devuelve el total de reseñas (positivas + negativas).
func (g *GameDoc) TotalReviews() int {
	return g.Positive + g.Negative
}

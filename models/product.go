package models

// Product representa um item do catálogo de frutas.
// O catálogo é carregado uma vez (db.SeedProducts) e somente lido depois.
// "order" é palavra reservada em SQL, por isso a coluna vira order_name.
type Product struct {
	ID           int64   `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Family       string  `json:"family"`
	Order        string  `gorm:"column:order_name" json:"order"`
	Genus        string  `json:"genus"`
	Calories     float64 `json:"calories"`
	Fat          float64 `json:"fat"`
	Sugar        float64 `json:"sugar"`
	Carbohydrate float64 `json:"carbohydrate"`
	Protein      float64 `json:"protein"`
	Link         string  `json:"link"`
	Price        string  `gorm:"default:''" json:"price"`
}

func (Product) TableName() string {
	return "products"
}

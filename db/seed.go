package db

import (
	"encoding/json"
	"log"
	"os"

	"frutaria/models"

	"github.com/jinzhu/gorm"
)

// seedProduct espelha o formato do data.json (catálogo de frutas com
// informações nutricionais).
type seedProduct struct {
	Name       string `json:"name"`
	Family     string `json:"family"`
	Order      string `json:"order"`
	Genus      string `json:"genus"`
	Nutritions struct {
		Calories      float64 `json:"calories"`
		Fat           float64 `json:"fat"`
		Sugar         float64 `json:"sugar"`
		Carbohydrates float64 `json:"carbohydrates"`
		Protein       float64 `json:"protein"`
	} `json:"nutritions"`
	Link  string `json:"link"`
	Price string `json:"price"`
}

// SeedProducts carrega o catálogo a partir do data.json.
// Só roda quando a tabela está vazia: o catálogo é imutável depois da
// carga inicial, então repetir a chamada é seguro (não duplica nada).
func SeedProducts(db *gorm.DB, path string) error {
	var count int
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var data []seedProduct
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	tx := db.Begin()
	for _, d := range data {
		price := d.Price
		if price == "" {
			price = "50"
		}
		product := models.Product{
			Name:         d.Name,
			Family:       d.Family,
			Order:        d.Order,
			Genus:        d.Genus,
			Calories:     d.Nutritions.Calories,
			Fat:          d.Nutritions.Fat,
			Sugar:        d.Nutritions.Sugar,
			Carbohydrate: d.Nutritions.Carbohydrates,
			Protein:      d.Nutritions.Protein,
			Link:         d.Link,
			Price:        price,
		}
		if err := tx.Create(&product).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	log.Printf("seeded %d products from %s", len(data), path)
	return nil
}

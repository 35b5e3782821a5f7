package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	dbpkg "frutaria/db"
	"frutaria/models"
	"frutaria/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// GET / e GET /products — listagem completa do catálogo.
func Products(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"data": products})
}

// GET /search?query=
// Consulta o índice hospedado e resolve os hits de volta pras linhas do
// banco preservando a ordem de relevância. Sem query cai na listagem
// completa; índice fora do ar cai num filtro local por nome.
func Search(c *gin.Context) {
	env := EnvInstance(c)
	db := dbpkg.DBInstance(c)
	if env == nil || db == nil {
		RespondError(c, "env não configurado no contexto", http.StatusInternalServerError)
		return
	}

	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		Products(c)
		return
	}

	ids, err := env.Search.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, tools.ErrSearchUnavailable) {
			log.Printf("search: index unavailable, using local filter: %v", err)
			localSearch(c, db, query)
			return
		}
		RespondError(c, err.Error(), http.StatusBadGateway)
		return
	}

	products, err := fetchByHitOrder(db, ids)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"data": products, "query": query})
}

// fetchByHitOrder busca as linhas por pertencimento de id e reordena pela
// ordem de relevância que o índice devolveu.
func fetchByHitOrder(db *gorm.DB, objectIDs []string) ([]models.Product, error) {
	ids := make([]int64, 0, len(objectIDs))
	for _, oid := range objectIDs {
		id, err := strconv.ParseInt(oid, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var rows []models.Product
	if err := db.Where("id IN (?)", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}

	ordered := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func localSearch(c *gin.Context, db *gorm.DB, query string) {
	var products []models.Product
	like := "%" + strings.ToLower(query) + "%"
	if err := db.Where("LOWER(name) LIKE ?", like).Find(&products).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"data": products, "query": query, "degraded": true})
}

// SyncCatalog projeta todas as linhas de products pro índice e faz o
// upsert em lote. É o único sync suportado: full resync, idempotente,
// seguro de repetir (chamado no boot e sob demanda).
func SyncCatalog(ctx context.Context, db *gorm.DB, client *tools.SearchIndexClient) error {
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return err
	}

	objects := make([]map[string]any, 0, len(products))
	for _, p := range products {
		objects = append(objects, searchRecord(p))
	}
	return client.SaveObjects(ctx, objects)
}

// searchRecord é a projeção desnormalizada de Product pro índice.
func searchRecord(p models.Product) map[string]any {
	return map[string]any{
		"objectID":     strconv.FormatInt(p.ID, 10),
		"name":         p.Name,
		"family":       p.Family,
		"order":        p.Order,
		"genus":        p.Genus,
		"calories":     p.Calories,
		"fat":          p.Fat,
		"sugar":        p.Sugar,
		"carbohydrate": p.Carbohydrate,
		"protein":      p.Protein,
		"link":         p.Link,
		"price":        p.Price,
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"frutaria/models"
	"frutaria/tools"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, database *gorm.DB) []models.Product {
	t.Helper()
	products := []models.Product{
		{Name: "apple pie", Family: "Rosaceae", Order: "Rosales", Genus: "Malus", Calories: 52, Price: "50"},
		{Name: "Banana", Family: "Musaceae", Order: "Zingiberales", Genus: "Musa", Calories: 96, Price: "30"},
		{Name: "Strawberry", Family: "Rosaceae", Order: "Rosales", Genus: "Fragaria", Calories: 29, Price: "80"},
	}
	for i := range products {
		require.NoError(t, database.Create(&products[i]).Error)
	}
	return products
}

func decodeData(t *testing.T, body []byte) []models.Product {
	t.Helper()
	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func TestProductsListsCatalog(t *testing.T) {
	r, database, _ := newTestApp(t, nil)
	seedCatalog(t, database)

	for _, path := range []string{"/", "/products"} {
		w := doJSON(t, r, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData(t, w.Body.Bytes()), 3, "path=%s", path)
	}
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	r, database, _ := newTestApp(t, nil)
	seedCatalog(t, database)

	w := doJSON(t, r, http.MethodGet, "/search", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData(t, w.Body.Bytes()), 3)
}

func TestSearchResolvesHitsPreservingRanking(t *testing.T) {
	r, database, env := newTestApp(t, nil)
	products := seedCatalog(t, database)

	// índice devolve Strawberry antes de apple pie; a resposta tem que
	// respeitar essa ordem, não a ordem de id do banco
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"hits": [{"objectID": "%d"}, {"objectID": "%d"}]}`,
			products[2].ID, products[0].ID)
	}))
	defer server.Close()
	env.Search = tools.NewSearchIndexClient("app", "key", "products", server.URL, time.Second)

	w := doJSON(t, r, http.MethodGet, "/search?query=apple", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decodeData(t, w.Body.Bytes())
	require.Len(t, got, 2)
	assert.Equal(t, "Strawberry", got[0].Name)
	assert.Equal(t, "apple pie", got[1].Name)
}

func TestSearchResolvesHitToStoreRow(t *testing.T) {
	r, database, env := newTestApp(t, nil)
	products := seedCatalog(t, database)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"hits": [{"objectID": "%d"}]}`, products[0].ID)
	}))
	defer server.Close()
	env.Search = tools.NewSearchIndexClient("app", "key", "products", server.URL, time.Second)

	w := doJSON(t, r, http.MethodGet, "/search?query=apple", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeData(t, w.Body.Bytes())
	require.Len(t, got, 1)
	// a linha vem do banco, com todos os campos do catálogo
	assert.Equal(t, "apple pie", got[0].Name)
	assert.Equal(t, "Rosaceae", got[0].Family)
	assert.Equal(t, "50", got[0].Price)
}

func TestSearchIgnoresHitsWithoutRow(t *testing.T) {
	r, database, env := newTestApp(t, nil)
	products := seedCatalog(t, database)

	// índice eventualmente consistente pode devolver id que já não existe
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, `{"hits": [{"objectID": "9999"}, {"objectID": "%d"}, {"objectID": "abc"}]}`,
			products[1].ID)
	}))
	defer server.Close()
	env.Search = tools.NewSearchIndexClient("app", "key", "products", server.URL, time.Second)

	w := doJSON(t, r, http.MethodGet, "/search?query=banana", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeData(t, w.Body.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, "Banana", got[0].Name)
}

func TestSearchFallsBackWhenIndexUnavailable(t *testing.T) {
	r, database, env := newTestApp(t, nil)
	seedCatalog(t, database)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	server.Close() // índice fora do ar
	env.Search = tools.NewSearchIndexClient("app", "key", "products", server.URL, time.Second)

	w := doJSON(t, r, http.MethodGet, "/search?query=apple", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, "indisponibilidade do índice não pode virar erro pro usuário")

	var resp struct {
		Data     []models.Product `json:"data"`
		Degraded bool             `json:"degraded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Degraded)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "apple pie", resp.Data[0].Name)
}

func TestSyncCatalogPushesAllRowsAndIsIdempotent(t *testing.T) {
	_, database, _ := newTestApp(t, nil)
	products := seedCatalog(t, database)

	var batches []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/1/indexes/products/batch", req.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		batches = append(batches, body)
		w.Write([]byte(`{"taskID": 1, "objectIDs": []}`))
	}))
	defer server.Close()
	client := tools.NewSearchIndexClient("app", "key", "products", server.URL, time.Second)

	require.NoError(t, SyncCatalog(context.Background(), database, client))
	require.NoError(t, SyncCatalog(context.Background(), database, client))

	require.Len(t, batches, 2)
	assert.Equal(t, batches[0], batches[1], "dados iguais geram o mesmo lote")

	requests := batches[0]["requests"].([]any)
	require.Len(t, requests, len(products))
	first := requests[0].(map[string]any)
	assert.Equal(t, "updateObject", first["action"])
	body := first["body"].(map[string]any)
	assert.Equal(t, fmt.Sprintf("%d", products[0].ID), body["objectID"])
	assert.Equal(t, "apple pie", body["name"])
	assert.Equal(t, "Rosales", body["order"])
}

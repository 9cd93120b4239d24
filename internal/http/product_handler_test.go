package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sushanthnayak-eng/FashionCart/internal/catalog"
	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

func newProductHandler(products ...domain.Product) *ProductHandler {
	svc := catalog.NewService(newProductStore(products...))
	return NewProductHandler(svc, nil, 5*time.Second)
}

func TestListProducts_AppliesQueryFilters(t *testing.T) {
	casual := domain.Product{ID: "p1", Name: "Linen Shirt", Price: 499, Category: domain.CategoryCasual, AgeGroup: domain.AgeGroupAdults}
	party := domain.Product{ID: "p2", Name: "Sequin Dress", Price: 899, Category: domain.CategoryParty, AgeGroup: domain.AgeGroupYoung}
	handler := newProductHandler(casual, party)

	recorder := httptest.NewRecorder()
	request := withIdentity(httptest.NewRequest("GET", "/api/v1/products?category=Party", nil), shopper())

	handler.ListProducts(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("expected 1 product, got %d", len(response))
	}
	if response[0].ID != "p2" {
		t.Errorf("expected p2, got %q", response[0].ID)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	handler := newProductHandler()

	recorder := httptest.NewRecorder()
	request := withIdentity(httptest.NewRequest("GET", "/api/v1/products/ghost", nil), shopper())
	request = withURLParam(request, "product_id", "ghost")

	handler.GetProduct(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestCreateProduct_AssignsID(t *testing.T) {
	handler := newProductHandler()

	body := `{"name":"Silk Kurta","price":1299,"description":"Festive wear","category":"Ethnic","age_group":"Adults (30+)"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(body))

	handler.CreateProduct(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var response domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID == "" {
		t.Error("expected server-assigned id")
	}
	if response.Category != domain.CategoryEthnic {
		t.Errorf("expected category %q, got %q", domain.CategoryEthnic, response.Category)
	}
}

func TestCreateProduct_RejectsUnknownCategory(t *testing.T) {
	handler := newProductHandler()

	body := `{"name":"Mystery Garment","price":100,"category":"Streetwear","age_group":"Adults (30+)"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(body))

	handler.CreateProduct(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestDeleteProduct_NoContent(t *testing.T) {
	handler := newProductHandler(sampleProduct("p1"))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/api/v1/admin/products/p1", nil)
	request = withURLParam(request, "product_id", "p1")

	handler.DeleteProduct(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Errorf("expected %d, got %d", http.StatusNoContent, recorder.Code)
	}
}

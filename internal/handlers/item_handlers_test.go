package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"pos_backend/internal/models"
	"pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type fakeInventoryService struct {
	item      *models.InventoryItem
	items     []models.InventoryItem
	history   []models.StockHistory
	adjustErr error
	createErr error
	updateErr error
}

func (f *fakeInventoryService) GetItems(_ int64, _, _ string) ([]models.InventoryItem, error) {
	return f.items, nil
}

func (f *fakeInventoryService) CreateItem(_ context.Context, _ int64, _ services.CreateItemRequest) (*models.InventoryItem, error) {
	return f.item, f.createErr
}

func (f *fakeInventoryService) UpdateItem(_ context.Context, _ int64, _ services.UpdateItemRequest) (*models.InventoryItem, error) {
	return f.item, f.updateErr
}

func (f *fakeInventoryService) AdjustStock(_ context.Context, _ int64, _ services.AdjustStockRequest) (*models.InventoryItem, error) {
	return f.item, f.adjustErr
}

func (f *fakeInventoryService) DeleteItem(_ int64) error { return nil }

func (f *fakeInventoryService) GetStockHistory(_ int64) ([]models.StockHistory, error) {
	return f.history, nil
}

func itemRouter(svc services.InventoryService) *gin.Engine {
	engine := gin.New()
	handler := NewItemHandler(svc)
	engine.POST("/companies/:id/items", handler.CreateItem)
	engine.POST("/items/:id/adjust-stock", handler.AdjustStock)
	engine.PUT("/items/:id", handler.UpdateItem)
	engine.GET("/items/:id/history", handler.GetStockHistory)
	return engine
}

func TestAdjustStockResponse(t *testing.T) {
	engine := itemRouter(&fakeInventoryService{
		item: &models.InventoryItem{ID: 3, Quantity: 55},
	})

	rec := doJSON(t, engine, http.MethodPost, "/items/3/adjust-stock", `{"action":"increase","quantity":15}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["id"] != float64(3) {
		t.Errorf("id = %v, want 3", body["id"])
	}
	if body["quantity"] != float64(55) {
		t.Errorf("quantity = %v, want 55", body["quantity"])
	}
}

func TestAdjustStockBelowZero(t *testing.T) {
	engine := itemRouter(&fakeInventoryService{
		adjustErr: fmt.Errorf("%w: cannot reduce stock below zero", services.ErrInsufficientStock),
	})

	rec := doJSON(t, engine, http.MethodPost, "/items/3/adjust-stock", `{"action":"decrease","quantity":99}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if msg, _ := body["error"].(string); msg == "" {
		t.Errorf("missing error message: %v", body)
	}
}

func TestAdjustStockUnknownItem(t *testing.T) {
	engine := itemRouter(&fakeInventoryService{adjustErr: services.ErrItemNotFound})
	rec := doJSON(t, engine, http.MethodPost, "/items/404/adjust-stock", `{"action":"increase","quantity":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateItemUnknownCompany(t *testing.T) {
	engine := itemRouter(&fakeInventoryService{createErr: services.ErrCompanyNotFound})
	rec := doJSON(t, engine, http.MethodPost, "/companies/99/items", `{"name":"Pump","unit_price":8}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateItemResponse(t *testing.T) {
	engine := itemRouter(&fakeInventoryService{
		item: &models.InventoryItem{ID: 7, CompanyID: 3, Name: "Pump", Quantity: 12},
	})
	rec := doJSON(t, engine, http.MethodPost, "/companies/3/items", `{"name":"Pump","unit_price":8,"quantity":12}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["id"] != float64(7) || body["name"] != "Pump" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestUpdateItemValidationError(t *testing.T) {
	engine := itemRouter(&fakeInventoryService{
		updateErr: fmt.Errorf("%w: item name, quantity and unit price are required", services.ErrValidation),
	})
	rec := doJSON(t, engine, http.MethodPut, "/items/3", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Tonkata28/imotiko-website/internal/models"

	"github.com/gin-gonic/gin"
)

func TestAdminCreateProperty(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)

	w := doJSON(t, r, http.MethodPost, "/api/admin/properties", gin.H{
		"title":            "Office floor near Business Park",
		"property_type":    "office",
		"transaction_type": "rent",
		"price":            2400,
		"area":             160,
		"address":          "3 Mladost Blvd",
		"city":             "Sofia",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	created := body["property"].(map[string]interface{})
	if created["bathrooms"].(float64) != 1 {
		t.Fatalf("expected bathrooms to default to 1, got %v", created["bathrooms"])
	}
	if created["is_available"] != true {
		t.Fatal("new property should default to available")
	}
}

func TestAdminCreatePropertyValidation(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)

	w := doJSON(t, r, http.MethodPost, "/api/admin/properties", gin.H{
		"title": "Incomplete",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing required fields, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/properties", gin.H{
		"title":            "Bad enum",
		"property_type":    "castle",
		"transaction_type": "sale",
		"price":            1,
		"area":             1,
		"address":          "x",
		"city":             "Sofia",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown property_type, got %d", w.Code)
	}
}

func TestAdminUpdateProperty(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)
	property := seedProperty(t, gdb, nil)

	path := fmt.Sprintf("/api/admin/properties/%d", property.ID)
	w := doJSON(t, r, http.MethodPut, path, gin.H{
		"price":        145000,
		"is_available": false,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	updated := decodeBody(t, w)["property"].(map[string]interface{})
	if updated["price"].(float64) != 145000 {
		t.Fatalf("expected price 145000, got %v", updated["price"])
	}
	if updated["is_available"] != false {
		t.Fatal("expected is_available false after update")
	}
	// Untouched fields survive a partial update
	if updated["title"] != property.Title {
		t.Fatalf("partial update clobbered title: %v", updated["title"])
	}

	w = doJSON(t, r, http.MethodPut, path, gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty update, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, "/api/admin/properties/99999", gin.H{"price": 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown property, got %d", w.Code)
	}
}

func TestAdminDeletePropertyCascade(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)
	property := seedProperty(t, gdb, nil)

	img := models.PropertyImage{ImageURL: "https://img.example/a.jpg"}
	if err := gdb.UpsertImage(property.ID, &img); err != nil {
		t.Fatalf("UpsertImage: %v", err)
	}

	path := fmt.Sprintf("/api/admin/properties/%d", property.ID)
	w := doJSON(t, r, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	images, err := gdb.GetPropertyImages(property.ID)
	if err != nil {
		t.Fatalf("GetPropertyImages: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("images survived property delete: %d", len(images))
	}

	w = doJSON(t, r, http.MethodDelete, path, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", w.Code)
	}
}

func TestAdminImageLifecycle(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)
	property := seedProperty(t, gdb, nil)

	base := fmt.Sprintf("/api/admin/properties/%d/images", property.ID)
	w := doJSON(t, r, http.MethodPost, base, gin.H{
		"image_url":  "https://img.example/a.jpg",
		"is_primary": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, base, gin.H{
		"image_url": "https://img.example/b.jpg",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	second := decodeBody(t, w)["image"].(map[string]interface{})
	secondID := uint(second["id"].(float64))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("%s/%d/primary", base, secondID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	primary, err := gdb.ResolvePrimary(property.ID)
	if err != nil {
		t.Fatalf("ResolvePrimary: %v", err)
	}
	if primary == nil || *primary != "https://img.example/b.jpg" {
		t.Fatalf("expected second image to be primary, got %v", primary)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/images/%d", secondID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminInquiryWorkflow(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)
	property := seedProperty(t, gdb, nil)

	inquiry := models.Inquiry{
		PropertyID: property.ID,
		Name:       "Maria Petrova",
		Email:      "maria@example.com",
		Message:    "Question",
	}
	if err := gdb.CreateInquiry(&inquiry); err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/admin/inquiries?is_read=false", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if decodeBody(t, w)["total"].(float64) != 1 {
		t.Fatal("expected 1 unread inquiry")
	}

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/inquiries/%d/read", inquiry.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/inquiries?is_read=false", nil)
	if decodeBody(t, w)["total"].(float64) != 0 {
		t.Fatal("inquiry still unread after marking")
	}
}

func TestAdminStats(t *testing.T) {
	gdb := newTestDB(t)
	r := newRouter(gdb)

	seedProperty(t, gdb, nil)
	seedProperty(t, gdb, func(p *models.Property) {
		p.IsAvailable = false
	})

	w := doJSON(t, r, http.MethodGet, "/api/admin/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	props := body["properties"].(map[string]interface{})
	if props["available"].(float64) != 1 || props["unavailable"].(float64) != 1 || props["total"].(float64) != 2 {
		t.Fatalf("unexpected property counts: %v", props)
	}
}

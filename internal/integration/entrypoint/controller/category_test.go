// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// failingCategoryRepo simulates a store outage on every operation.
type failingCategoryRepo struct{}

func (failingCategoryRepo) Create(ctx context.Context, cat *entity.Category) error {
	return errors.New("connection reset by peer")
}

func (failingCategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return nil, errors.New("connection reset by peer")
}

func (failingCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	return nil, errors.New("connection reset by peer")
}

func (failingCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, errors.New("connection reset by peer")
}

// captureLogs redirects the default slog logger into a buffer for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestCategoryController_Create_UnexpectedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := captureLogs(t)

	ctrl := NewCategoryController(nil, category.NewCreateCategoryUseCase(failingCategoryRepo{}))
	engine := gin.New()
	engine.POST("/categories", ctrl.Create)

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Food"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "An internal error occurred") {
		t.Errorf("expected an opaque error body, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Errorf("cause must not leak to the client: %s", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "connection reset by peer") {
		t.Errorf("cause must be logged, log output: %s", logs.String())
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"xplife/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/labstack/echo/v4"
)

func TestRestGenerationResultCapRefusal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quests/generate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	result := &models.GenerationResult{
		Reason:       models.ReasonWeeklyLimitReached,
		CurrentCount: 20,
		Limit:        20,
	}
	err := restGenerationResult(c, result, errorx.Wrap(errors.New(result.Reason), errorx.Invalid))
	if err != nil {
		t.Fatalf("restGenerationResult returned %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var body models.GenerationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a GenerationResult: %v", err)
	}
	if body.Reason != models.ReasonWeeklyLimitReached {
		t.Errorf("Reason = %q, want %q", body.Reason, models.ReasonWeeklyLimitReached)
	}
	if body.CurrentCount != 20 || body.Limit != 20 {
		t.Errorf("counts = %d/%d, want 20/20", body.CurrentCount, body.Limit)
	}
}

func TestRestGenerationResultSuccessPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quests/generate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := restGenerationResult(c, &models.GenerationResult{Count: 4}, nil); err != nil {
		t.Fatalf("restGenerationResult returned %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

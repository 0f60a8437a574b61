package handlers

import (
	"net/http"
	"time"

	"brandTracker/internal/handlers/dto"
	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := dto.BrandQuery(r.URL.Query())
	res := h.brands.ListBrands(r.Context(), query)

	// снимок заменяет только нефильтрованный список
	if res.Success && query == (brand.Query{}) {
		if err := h.snapshots.ReplaceBrands(r.Context(), res.Data); err != nil {
			logger.Error("HTTP: Не удалось обновить снимок брендов", err)
		}
	}

	logger.Info("HTTP_OUT: Бренды получены",
		zap.Duration("ms", time.Since(start)),
		zap.Int("count", len(res.Data)))
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	responseWithResult(w, http.StatusOK, h.brands.GetBrand(r.Context(), brand.ID(chi.URLParam(r, "id"))))
}

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request brand.CreateBrandDto
	if !decodeJSON(w, r, &request) {
		return
	}

	res := h.brands.CreateBrand(r.Context(), request)
	if res.Success && res.Data != nil {
		h.patchBrands(r.Context(), upsertBrand(*res.Data))
	}
	responseWithResult(w, http.StatusCreated, res)
}

func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request brand.Update
	if !decodeJSON(w, r, &request) {
		return
	}

	res := h.brands.UpdateBrand(r.Context(), brand.ID(chi.URLParam(r, "id")), request)
	if res.Success && res.Data != nil {
		h.patchBrands(r.Context(), upsertBrand(*res.Data))
	}
	responseWithResult(w, http.StatusOK, res)
}

func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := brand.ID(chi.URLParam(r, "id"))
	res := h.brands.DeleteBrand(r.Context(), id)
	if res.Success {
		h.patchBrands(r.Context(), removeBrand(id))
	}
	responseWithResult(w, http.StatusOK, res)
}

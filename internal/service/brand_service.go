package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"brandTracker/internal/backend"
	"brandTracker/internal/logger"
	"brandTracker/internal/models/brand"

	"go.uber.org/zap"
)

// BrandService - обёртка над эндпоинтами /brands.
type BrandService struct {
	api  Requester
	path string
}

func NewBrandService(api Requester, basePath string) *BrandService {
	return &BrandService{
		api:  api,
		path: strings.TrimRight(basePath, "/"),
	}
}

func (s *BrandService) ListBrands(ctx context.Context, q brand.Query) Result[[]brand.Brand] {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.Company != "" {
		query.Set("company", q.Company)
	}

	var env backend.Envelope[[]brand.Brand]
	if err := accepted(s.api.Do(ctx, http.MethodGet, s.path, query, nil, &env), &env); err != nil {
		return fail(make([]brand.Brand, 0), "list_brands", err, "Не удалось получить бренды")
	}

	brands := env.Data
	if brands == nil {
		brands = make([]brand.Brand, 0)
	}
	for i := range brands {
		brands[i].Normalize()
	}

	res := succeed(brands, env.Message)
	res.Total = env.Total
	return res
}

func (s *BrandService) GetBrand(ctx context.Context, id brand.ID) Result[*brand.Brand] {
	const op = "get_brand"
	if err := checkBrandID(id); err != nil {
		return invalid[*brand.Brand](nil, op, err)
	}

	var env backend.Envelope[*brand.Brand]
	if err := accepted(s.api.Do(ctx, http.MethodGet, s.brandPath(id), nil, nil, &env), &env); err != nil {
		return fail[*brand.Brand](nil, op, err, "Не удалось получить бренд")
	}
	normalizeBrand(env.Data)
	return succeed(env.Data, env.Message)
}

func (s *BrandService) CreateBrand(ctx context.Context, dto brand.CreateBrandDto) Result[*brand.Brand] {
	const op = "create_brand"
	if strings.TrimSpace(dto.Name) == "" {
		return invalid[*brand.Brand](nil, op, NewValidationError("name", "название не может быть пустым"))
	}
	if strings.TrimSpace(dto.Company) == "" {
		return invalid[*brand.Brand](nil, op, NewValidationError("company", "компания не может быть пустой"))
	}
	if dto.Status == "" {
		dto.Status = brand.StatusActive
	}

	var env backend.Envelope[*brand.Brand]
	if err := accepted(s.api.Do(ctx, http.MethodPost, s.path, nil, dto, &env), &env); err != nil {
		return fail[*brand.Brand](nil, op, err, "Не удалось создать бренд")
	}
	normalizeBrand(env.Data)

	logger.Info("Service: Бренд создан", zap.String("name", dto.Name))
	return succeed(env.Data, env.Message)
}

func (s *BrandService) UpdateBrand(ctx context.Context, id brand.ID, update brand.Update) Result[*brand.Brand] {
	const op = "update_brand"
	if err := checkBrandID(id); err != nil {
		return invalid[*brand.Brand](nil, op, err)
	}

	var env backend.Envelope[*brand.Brand]
	if err := accepted(s.api.Do(ctx, http.MethodPut, s.brandPath(id), nil, update, &env), &env); err != nil {
		return fail[*brand.Brand](nil, op, err, "Не удалось обновить бренд")
	}
	normalizeBrand(env.Data)
	return succeed(env.Data, env.Message)
}

func (s *BrandService) DeleteBrand(ctx context.Context, id brand.ID) Result[json.RawMessage] {
	const op = "delete_brand"
	if err := checkBrandID(id); err != nil {
		return invalid[json.RawMessage](nil, op, err)
	}

	var env backend.Envelope[json.RawMessage]
	if err := accepted(s.api.Do(ctx, http.MethodDelete, s.brandPath(id), nil, nil, &env), &env); err != nil {
		return fail[json.RawMessage](nil, op, err, "Не удалось удалить бренд")
	}

	logger.Info("Service: Бренд удалён", zap.String("brand_id", id.String()))
	return succeed(env.Data, env.Message)
}

func (s *BrandService) brandPath(id brand.ID) string {
	return s.path + "/" + url.PathEscape(id.String())
}

// checkBrandID отклоняет пустые id и id каталога, которые существуют только локально.
func checkBrandID(id brand.ID) *BusinessError {
	if id == "" {
		return NewValidationError("id", "id не может быть пустым")
	}
	if brand.IsSyntheticID(id) {
		return NewValidationError("id", "бренд из каталога по умолчанию не хранится на сервере")
	}
	return nil
}

func normalizeBrand(b *brand.Brand) {
	if b != nil {
		b.Normalize()
	}
}

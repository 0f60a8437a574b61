package views

import (
	"strconv"

	"brandTracker/internal/models/brand"
)

// MergeCatalog возвращает бренды backend, а за ними каждый бренд каталога,
// которого в backend ещё нет (то же название и компания без учёта регистра).
// Бренды каталога получают id "default-<позиция>" и помечаются синтетическими.
func MergeCatalog(backend, catalog []brand.Brand) []brand.Brand {
	res := make([]brand.Brand, 0, len(backend)+len(catalog))
	res = append(res, backend...)

	for i, c := range catalog {
		if containsIdentity(res, c) {
			continue
		}
		c.ID = brand.ID(brand.SyntheticPrefix + strconv.Itoa(i+1))
		c.MongoID = ""
		c.Synthetic = true
		if c.Status == "" {
			c.Status = brand.StatusActive
		}
		res = append(res, c)
	}
	return res
}

func containsIdentity(brands []brand.Brand, b brand.Brand) bool {
	for _, existing := range brands {
		if existing.SameIdentity(b) {
			return true
		}
	}
	return false
}

// FindBrand ищет бренд по id.
func FindBrand(brands []brand.Brand, id brand.ID) (brand.Brand, bool) {
	for _, b := range brands {
		if b.ID == id {
			return b, true
		}
	}
	return brand.Brand{}, false
}

package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/user"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultCatalog []byte

// Catalog - исходные данные, которые подмешиваются к ответам backend при чтении:
// список брендов по умолчанию и справочник известных пользователей.
type Catalog struct {
	Brands []brand.Brand `yaml:"brands"`
	Users  user.Roster   `yaml:"users"`
}

// Default возвращает каталог, встроенный в бинарник.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load читает файл каталога; пустой путь означает встроенный каталог.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не могу открыть каталог %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("ошибка парсинга каталога: %w", err)
	}

	for i, b := range c.Brands {
		if b.Name == "" || b.Company == "" {
			return nil, fmt.Errorf("бренд #%d в каталоге: name и company обязательны", i+1)
		}
		if b.Status == "" {
			c.Brands[i].Status = brand.StatusActive
		}
	}
	return &c, nil
}

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	ErrReadCatalog    = errors.New("catalog: failed to read file")
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
)

// File структура devices.yaml
type File struct {
	Devices []Entry `yaml:"devices"`
}

// Entry одно устройство каталога
type Entry struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
}

// Load читает каталог устройств из YAML-файла
func Load(path string) ([]*domain.Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadCatalog, path, err)
	}
	return Parse(data)
}

// Parse разбирает каталог и проверяет, что ID уникальны, а категории известны
func Parse(data []byte) ([]*domain.Device, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(file.Devices))
	devices := make([]*domain.Device, 0, len(file.Devices))
	for i, entry := range file.Devices {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: device #%d has empty id", ErrInvalidCatalog, i+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate device id %q", ErrInvalidCatalog, id)
		}
		seen[id] = struct{}{}

		category := domain.DeviceCategory(strings.ToLower(strings.TrimSpace(entry.Category)))
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: device %q has unknown category %q", ErrInvalidCatalog, id, entry.Category)
		}

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = id
		}

		devices = append(devices, &domain.Device{ID: id, Category: category, Name: name})
	}

	return devices, nil
}

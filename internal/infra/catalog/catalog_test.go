package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

func TestParse(t *testing.T) {
	data := []byte(`
devices:
  - id: W1
    category: washer
    name: Washer 1
  - id: D1
    category: Dryer
`)

	devices, err := Parse(data)

	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, domain.CategoryWasher, devices[0].Category)
	assert.Equal(t, domain.CategoryDryer, devices[1].Category)
	assert.Equal(t, "D1", devices[1].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "duplicate id", data: "devices:\n  - {id: W1, category: washer}\n  - {id: W1, category: washer}\n"},
		{name: "unknown category", data: "devices:\n  - {id: X1, category: ironing}\n"},
		{name: "empty id", data: "devices:\n  - {category: washer}\n"},
		{name: "broken yaml", data: "devices: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_RepositoryCatalog(t *testing.T) {
	devices, err := Load(filepath.Join("..", "..", "..", "devices.yaml"))
	require.NoError(t, err)
	assert.Len(t, devices, 8)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrReadCatalog)
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var errNotFound = errors.New("not found")

type countingSource struct {
	devices map[string]*domain.Device
	gets    int
	lists   int
}

func (s *countingSource) GetByID(_ context.Context, id string) (*domain.Device, error) {
	s.gets++
	if d, ok := s.devices[id]; ok {
		return d, nil
	}
	return nil, errNotFound
}

func (s *countingSource) List(_ context.Context) ([]*domain.Device, error) {
	s.lists++
	list := make([]*domain.Device, 0, len(s.devices))
	for _, d := range s.devices {
		list = append(list, d)
	}
	return list, nil
}

func newSource() *countingSource {
	return &countingSource{devices: map[string]*domain.Device{
		"W1": {ID: "W1", Category: domain.CategoryWasher, Name: "Washer 1"},
	}}
}

func TestDeviceCache_GetByID(t *testing.T) {
	src := newSource()
	c := NewDeviceCache(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := c.GetByID(ctx, "W1")
		require.NoError(t, err)
		assert.Equal(t, "Washer 1", d.Name)
	}
	assert.Equal(t, 1, src.gets)
}

func TestDeviceCache_MissIsNotCached(t *testing.T) {
	src := newSource()
	c := NewDeviceCache(src, 0)
	ctx := context.Background()

	_, err := c.GetByID(ctx, "X9")
	assert.ErrorIs(t, err, errNotFound)
	_, err = c.GetByID(ctx, "X9")
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 2, src.gets)
}

func TestDeviceCache_ListWarmsSingleEntries(t *testing.T) {
	src := newSource()
	c := NewDeviceCache(src, time.Minute)
	ctx := context.Background()

	_, err := c.List(ctx)
	require.NoError(t, err)
	_, err = c.GetByID(ctx, "W1")
	require.NoError(t, err)
	assert.Equal(t, 0, src.gets)

	c.Invalidate()
	_, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.lists)
}

package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

const (
	keyDevicePrefix = "device:"
	keyDeviceList   = "devices:all"
)

// DeviceSource источник устройств за кешем
type DeviceSource interface {
	GetByID(ctx context.Context, id string) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
}

// DeviceCache кеширует реестр устройств в памяти процесса.
// Устройства неизменяемы после заведения, поэтому инвалидация нужна только после пересева каталога
type DeviceCache struct {
	source DeviceSource
	store  *gocache.Cache
}

// NewDeviceCache создает кеш; ttl <= 0 означает хранить без срока
func NewDeviceCache(source DeviceSource, ttl time.Duration) *DeviceCache {
	expiration := ttl
	cleanup := 2 * ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &DeviceCache{
		source: source,
		store:  gocache.New(expiration, cleanup),
	}
}

// GetByID возвращает устройство; ошибки источника (в т.ч. not found) не кешируются
func (c *DeviceCache) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	if cached, found := c.store.Get(keyDevicePrefix + id); found {
		return cached.(*domain.Device), nil
	}

	device, err := c.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store.SetDefault(keyDevicePrefix+id, device)
	return device, nil
}

func (c *DeviceCache) List(ctx context.Context) ([]*domain.Device, error) {
	if cached, found := c.store.Get(keyDeviceList); found {
		return cached.([]*domain.Device), nil
	}

	devices, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}

	c.store.SetDefault(keyDeviceList, devices)
	for _, d := range devices {
		c.store.SetDefault(keyDevicePrefix+d.ID, d)
	}
	return devices, nil
}

// Invalidate сбрасывает кеш целиком
func (c *DeviceCache) Invalidate() {
	c.store.Flush()
}

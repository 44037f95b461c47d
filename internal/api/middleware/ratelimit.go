package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
)

// DefaultLimiterIdleTTL сколько хранится лимитер клиента без запросов
const DefaultLimiterIdleTTL = 10 * time.Minute

// ClientRateLimiter хранит rate.Limiter для каждого клиента.
// Лимитер, к которому не обращались idleTTL, вытесняется из кеша
type ClientRateLimiter struct {
	limiters *gocache.Cache
	r        rate.Limit
	b        int
	trusted  []*net.IPNet
}

// NewClientRateLimiter создает лимитер: r запросов в секунду, всплеск до b.
// X-Forwarded-For учитывается только для запросов, пришедших с адресов из trusted
func NewClientRateLimiter(r rate.Limit, b int, idleTTL time.Duration, trusted []*net.IPNet) *ClientRateLimiter {
	if idleTTL <= 0 {
		idleTTL = DefaultLimiterIdleTTL
	}
	return &ClientRateLimiter{
		limiters: gocache.New(idleTTL, idleTTL),
		r:        r,
		b:        b,
		trusted:  trusted,
	}
}

// GetLimiter возвращает лимитер клиента, создавая его при первом обращении.
// Каждое обращение продлевает срок хранения лимитера
func (l *ClientRateLimiter) GetLimiter(key string) *rate.Limiter {
	if cached, found := l.limiters.Get(key); found {
		l.limiters.SetDefault(key, cached)
		return cached.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(l.r, l.b)
	if err := l.limiters.Add(key, limiter, gocache.DefaultExpiration); err != nil {
		// параллельный запрос того же клиента успел создать лимитер
		if cached, found := l.limiters.Get(key); found {
			return cached.(*rate.Limiter)
		}
		l.limiters.SetDefault(key, limiter)
	}
	return limiter
}

// Len число клиентов с неистекшими лимитерами
func (l *ClientRateLimiter) Len() int {
	l.limiters.DeleteExpired()
	return l.limiters.ItemCount()
}

// RateLimit ограничивает частоту запросов по пользователю, а для анонимных запросов по IP
func RateLimit(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(limiter.clientKey(r)).Allow() {
				handlers.RespondTooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *ClientRateLimiter) clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + userID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !l.isTrusted(host) {
		return "ip:" + host
	}

	// Цепочка дописывается каждым прокси справа: идем справа налево до первого недоверенного адреса
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !l.isTrusted(hop) {
			return "ip:" + hop
		}
		host = hop
	}
	return "ip:" + host
}

func (l *ClientRateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range l.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies разбирает список адресов и CIDR доверенных прокси
func ParseTrustedProxies(values []string) ([]*net.IPNet, error) {
	networks := make([]*net.IPNet, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if !strings.Contains(value, "/") {
			ip := net.ParseIP(value)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", value)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			networks = append(networks, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(value)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", value, err)
		}
		networks = append(networks, network)
	}
	return networks, nil
}

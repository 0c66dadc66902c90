package identity

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// errKeysUnavailable marks failures to obtain signing keys, as opposed to
// a token that references an unknown key.
var errKeysUnavailable = errors.New("signing keys unavailable")

const defaultKeyTTL = time.Hour

// keyCache holds the authority's signing certificates keyed by kid.
// Refreshes honour the Cache-Control max-age of the certs endpoint.
type keyCache struct {
	http *resty.Client
	url  string
	now  func() time.Time

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

func newKeyCache(http *resty.Client, url string, now func() time.Time) *keyCache {
	return &keyCache{
		http: http,
		url:  url,
		now:  now,
		keys: map[string]*rsa.PublicKey{},
	}
}

func (k *keyCache) get(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.RLock()
	key := k.keys[kid]
	fresh := k.now().Before(k.expiresAt)
	k.mu.RUnlock()

	if fresh {
		if key == nil {
			return nil, fmt.Errorf("unknown kid %q", kid)
		}
		return key, nil
	}

	if err := k.refresh(ctx); err != nil {
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	k.mu.RLock()
	defer k.mu.RUnlock()
	key = k.keys[kid]
	if key == nil {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}
	return key, nil
}

func (k *keyCache) refresh(ctx context.Context) error {
	var certs map[string]string
	resp, err := k.http.R().SetContext(ctx).SetResult(&certs).Get(k.url)
	if err != nil {
		return fmt.Errorf("%w: %v", errKeysUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: certs endpoint returned %s", errKeysUnavailable, resp.Status())
	}

	next := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemData := range certs {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
		if err != nil {
			continue
		}
		next[kid] = pub
	}
	if len(next) == 0 {
		return fmt.Errorf("%w: no usable certificates", errKeysUnavailable)
	}

	k.mu.Lock()
	k.keys = next
	k.expiresAt = k.now().Add(maxAge(resp.Header().Get("Cache-Control")))
	k.mu.Unlock()
	return nil
}

func (k *keyCache) size() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys)
}

func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(directive), "=")
		if !ok || !strings.EqualFold(name, "max-age") {
			continue
		}
		secs, err := strconv.Atoi(value)
		if err != nil || secs <= 0 {
			break
		}
		return time.Duration(secs) * time.Second
	}
	return defaultKeyTTL
}

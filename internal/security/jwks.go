// Package security verifies bearer tokens issued by the external identity
// provider against its published JWKS.
package security

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrBadToken   = errors.New("bad token")
	ErrUnknownKey = errors.New("kid not found in JWKS")
)

// Verifier is what the HTTP layer needs to authenticate a request.
type Verifier interface {
	ParseAndVerify(ctx context.Context, tokenStr string) (*Claims, error)
}

type Fetcher struct {
	JWKSURL string
	TTL     time.Duration
	// MinRefresh is the least time between two fetches triggered by an
	// unknown kid while the cached set is still fresh.
	MinRefresh time.Duration

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expAt     time.Time
	fetchedAt time.Time

	refreshMu sync.Mutex

	http *http.Client
}

func NewFetcher(jwksURL string, ttl time.Duration) *Fetcher {
	return &Fetcher{
		JWKSURL:    jwksURL,
		TTL:        ttl,
		MinRefresh: 30 * time.Second,
		keys:       make(map[string]*rsa.PublicKey),
		http:       &http.Client{Timeout: 5 * time.Second},
	}
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"` // base64url
	E   string `json:"e"` // base64url
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

func (f *Fetcher) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.JWKSURL, nil)
	if err != nil {
		return err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks: unexpected status %d", resp.StatusCode)
	}

	var doc jwks
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}
	tmp := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		nb, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		eb, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil || len(eb) == 0 {
			continue
		}
		e := 0
		for _, b := range eb {
			e = e<<8 + int(b)
		}
		tmp[k.Kid] = &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}
	}
	now := time.Now()
	f.mu.Lock()
	f.keys = tmp
	f.expAt = now.Add(f.TTL)
	f.fetchedAt = now
	f.mu.Unlock()
	return nil
}

func (f *Fetcher) lookup(kid string) (pk *rsa.PublicKey, ok, fresh, recent bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	now := time.Now()
	pk, ok = f.keys[kid]
	return pk, ok, now.Before(f.expAt), now.Sub(f.fetchedAt) < f.MinRefresh
}

// getKey serves kid from the cache. An unknown kid refetches the set at most
// once per MinRefresh; concurrent misses share one fetch.
func (f *Fetcher) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if pk, ok, fresh, _ := f.lookup(kid); ok && fresh {
		return pk, nil
	}

	f.refreshMu.Lock()
	defer f.refreshMu.Unlock()
	pk, ok, fresh, recent := f.lookup(kid)
	if ok && fresh {
		return pk, nil
	}
	if fresh && recent {
		return nil, ErrUnknownKey
	}

	if err := f.refresh(ctx); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if pk, ok := f.keys[kid]; ok {
		return pk, nil
	}
	return nil, ErrUnknownKey
}

// Claims issued by the identity provider. UID falls back to sub.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID is the external id the token was issued for.
func (c *Claims) UserID() string {
	uid := c.UID
	if uid == "" {
		uid = c.Subject
	}
	return normalizeUID(uid)
}

func (f *Fetcher) ParseAndVerify(ctx context.Context, tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	token, parts, err := parser.ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil || len(parts) != 3 {
		return nil, ErrBadToken
	}
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: no kid", ErrBadToken)
	}
	pub, err := f.getKey(ctx, kid)
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("bad method")
		}
		return pub, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// normalizeUID unwraps ids serialised as ObjectID("...").
func normalizeUID(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `ObjectID("`) && strings.HasSuffix(s, `")`) {
		return s[len(`ObjectID("`) : len(s)-len(`")`)]
	}
	return s
}

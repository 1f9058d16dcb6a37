package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"keyless-stay/logger"
	"keyless-stay/types"

	"github.com/golang-jwt/jwt/v5"
)

// FetchPublicKey fetches the PEM public key published by the identity provider.
// The endpoint answers {"key": "<PEM>"}.
func FetchPublicKey(client *http.Client, url string) (*rsa.PublicKey, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}

	block, _ := pem.Decode([]byte(keyResponse.Key))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}
	return rsaPubKey, nil
}

// TokenVerifier checks bearer tokens issued by the identity provider.
// With a secret it accepts HS256 tokens; otherwise it verifies RS256 tokens
// against the key at PublicKeyURL, fetched once and cached.
type TokenVerifier struct {
	Secret       []byte
	PublicKeyURL string
	HTTPClient   *http.Client

	mu        sync.Mutex
	publicKey *rsa.PublicKey
}

func NewTokenVerifier(secret, publicKeyURL string) *TokenVerifier {
	v := &TokenVerifier{
		PublicKeyURL: publicKeyURL,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
	if secret != "" {
		v.Secret = []byte(secret)
	}
	return v
}

func (v *TokenVerifier) rsaKey() (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.publicKey != nil {
		return v.publicKey, nil
	}
	if v.PublicKeyURL == "" {
		return nil, fmt.Errorf("no token verification key configured")
	}
	key, err := FetchPublicKey(v.HTTPClient, v.PublicKeyURL)
	if err != nil {
		return nil, err
	}
	v.publicKey = key
	return key, nil
}

// Verify parses tokenString and returns its claims when the signature and expiry hold
func (v *TokenVerifier) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if len(v.Secret) > 0 {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.Secret, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.rsaKey()
	})
	if err != nil {
		logger.Warning("Failed to parse JWT: " + err.Error())
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// IdentityFromClaims reads the caller id from "sub", falling back to "uid"
func IdentityFromClaims(claims jwt.MapClaims) types.Identity {
	identity := types.Identity{}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		identity.CallerID = sub
	} else if uid, ok := claims["uid"].(string); ok {
		identity.CallerID = uid
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	return identity
}

package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrTokenMalformed = errors.New("malformed download token")
	ErrTokenSignature = errors.New("download token signature mismatch")
	ErrTokenExpired   = errors.New("download token expired")
)

const defaultTokenTTL = 24 * time.Hour

// DownloadClaims binds an export job to its stored file until ExpiresAt (unix seconds).
type DownloadClaims struct {
	JobID     string `json:"j"`
	Path      string `json:"p"`
	ExpiresAt int64  `json:"e"`
}

// Expiry returns ExpiresAt as a time.
func (c DownloadClaims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// DownloadSigner issues URL-safe tokens of the form <claims>.<hmac-sha256>.
type DownloadSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewDownloadSigner builds a signer. A non-positive ttl falls back to 24h.
func NewDownloadSigner(secret string, ttl time.Duration) *DownloadSigner {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &DownloadSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a token for the job's file.
func (s *DownloadSigner) Sign(jobID, path string) (string, DownloadClaims, error) {
	if jobID == "" || path == "" {
		return "", DownloadClaims{}, errors.New("job id and path are required")
	}
	if len(s.secret) == 0 {
		return "", DownloadClaims{}, errors.New("download signing secret is empty")
	}
	claims := DownloadClaims{JobID: jobID, Path: path, ExpiresAt: s.now().Add(s.ttl).Unix()}
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", DownloadClaims{}, err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + s.mac(payload), claims, nil
}

// Verify checks the signature and, unless allowExpired, the expiry.
// Cleanup passes allowExpired to recover the path of a stale file.
func (s *DownloadSigner) Verify(token string, allowExpired bool) (DownloadClaims, error) {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok || payload == "" || signature == "" {
		return DownloadClaims{}, ErrTokenMalformed
	}
	if !hmac.Equal([]byte(s.mac(payload)), []byte(signature)) {
		return DownloadClaims{}, ErrTokenSignature
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return DownloadClaims{}, ErrTokenMalformed
	}
	var claims DownloadClaims
	if err := json.Unmarshal(raw, &claims); err != nil || claims.JobID == "" || claims.Path == "" {
		return DownloadClaims{}, ErrTokenMalformed
	}
	if !allowExpired && s.now().After(claims.Expiry()) {
		return claims, ErrTokenExpired
	}
	return claims, nil
}

func (s *DownloadSigner) mac(payload string) string {
	h := hmac.New(sha256.New, s.secret)
	_, _ = h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Package token builds and checks self-contained, time-limited tokens for
// password reset and email verification links. Tokens are not persisted:
// validity lives entirely in the token string, which also means a token
// cannot be revoked before it expires.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Expiry windows for the two codec instances.
const (
	PasswordResetTTL     = time.Hour
	EmailVerificationTTL = 24 * time.Hour
)

const nonceBytes = 32

// Payload identifies the account a token acts on.
type Payload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// envelope is the wire shape: the payload re-serialized as a string, a
// random nonce against guessing, and an absolute epoch-millisecond expiry.
// There is no keyed signature; the format is only as strong as its
// unguessability (see DESIGN.md).
type envelope struct {
	Data      string `json:"data"`
	Nonce     string `json:"randomBytes"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Codec issues and verifies tokens with a fixed time-to-live.
type Codec struct {
	ttl time.Duration
	now func() time.Time
}

func NewCodec(ttl time.Duration) *Codec {
	return &Codec{ttl: ttl, now: time.Now}
}

// Generate serializes the payload with a fresh nonce and an expiry of
// now+ttl into an unpadded URL-safe base64 string.
func (c *Codec) Generate(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("token: marshal payload: %w", err)
	}

	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("token: generate nonce: %w", err)
	}

	env, err := json.Marshal(envelope{
		Data:      string(data),
		Nonce:     hex.EncodeToString(nonce),
		ExpiresAt: c.now().Add(c.ttl).UnixMilli(),
	})
	if err != nil {
		return "", fmt.Errorf("token: marshal envelope: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(env), nil
}

// Verify decodes and checks a token. Malformed input of any kind, missing
// fields, and expired tokens all return (zero, false); Verify never panics
// and never returns an error. A token expiring at exactly now is still
// valid.
func (c *Codec) Verify(token string) (Payload, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Payload{}, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Payload{}, false
	}
	if env.Data == "" || env.ExpiresAt == 0 {
		return Payload{}, false
	}

	if env.ExpiresAt < c.now().UnixMilli() {
		return Payload{}, false
	}

	var p Payload
	if err := json.Unmarshal([]byte(env.Data), &p); err != nil {
		return Payload{}, false
	}

	return p, true
}

package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"
)

// KeyEntry pairs a plaintext API key with the subject it authenticates as.
type KeyEntry struct {
	Key     string
	Subject string
}

// APIKeys authenticates bearer tokens against a static key set.
//
// Keys are hashed with SHA-256 at construction time so plaintext keys
// are not retained, and lookups compare hashes in constant time.
type APIKeys struct {
	keys []hashedKey
}

type hashedKey struct {
	hash    [sha256.Size]byte
	subject string
}

// NewAPIKeys builds an authenticator from the given key entries.
// An entry without a subject is assigned one from its position.
func NewAPIKeys(entries []KeyEntry) (*APIKeys, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	keys := make([]hashedKey, 0, len(entries))
	for i, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("API key %d is empty", i)
		}
		subject := e.Subject
		if subject == "" {
			subject = fmt.Sprintf("api-key-%d", i)
		}
		keys = append(keys, hashedKey{
			hash:    sha256.Sum256([]byte(e.Key)),
			subject: subject,
		})
	}

	return &APIKeys{keys: keys}, nil
}

// Authenticate implements Authenticator.
func (a *APIKeys) Authenticate(ctx context.Context, r *http.Request) (*Identity, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(token))
	for _, k := range a.keys {
		if subtle.ConstantTimeCompare(sum[:], k.hash[:]) == 1 {
			return &Identity{Subject: k.subject}, nil
		}
	}

	return nil, fmt.Errorf("%w: unknown API key", ErrInvalidCredentials)
}

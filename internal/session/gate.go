package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidSession  = errors.New("invalid or expired session")
	ErrGateDisabled    = errors.New("admin password not configured")
)

const tokenSubject = "admin"

// Gate opens, checks and closes admin sessions.
type Gate struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

// NewGate hashes password once so the plain value is not kept around.
// An empty password yields a gate that rejects every login.
func NewGate(password, secret string, ttl time.Duration, store Store) (*Gate, error) {
	g := &Gate{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
	if password == "" {
		return g, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash admin password")
	}
	g.hash = hash
	return g, nil
}

func (g *Gate) Enabled() bool {
	return len(g.hash) > 0
}

// Login checks password and returns a signed token bound to a new session.
func (g *Gate) Login(ctx context.Context, password string) (string, *Session, error) {
	if !g.Enabled() {
		return "", nil, ErrGateDisabled
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return "", nil, ErrInvalidPassword
	}

	now := g.now()
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}
	if err := g.store.Save(ctx, sess); err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign session token")
	}
	return signed, sess, nil
}

// Validate resolves token to a live session.
func (g *Gate) Validate(ctx context.Context, token string) (*Session, error) {
	claims, err := g.parse(token, jwt.WithTimeFunc(g.now))
	if err != nil {
		return nil, ErrInvalidSession
	}

	sess, err := g.store.Get(ctx, claims.ID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(g.now()) {
		_ = g.store.Delete(ctx, sess.ID)
		return nil, ErrInvalidSession
	}
	return sess, nil
}

// Logout ends the session behind token. Expired tokens are accepted so a
// stale client can still clear its session.
func (g *Gate) Logout(ctx context.Context, token string) error {
	claims, err := g.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return ErrInvalidSession
	}
	return g.store.Delete(ctx, claims.ID)
}

func (g *Gate) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" || claims.Subject != tokenSubject {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Package session issues and checks the signed admin session tokens.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	contextKey = "admin"
	subject    = "admin"
)

// Token is a freshly issued session.
type Token struct {
	Value     string    `json:"token"`
	ID        string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims are the parts of a verified token the handlers need.
type Claims struct {
	ID        string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
	log    *slog.Logger
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, store Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{secret: []byte(secret), ttl: ttl, store: store, log: log, now: time.Now}
}

// Issue signs a new HS256 token with a random id.
func (m *Manager) Issue() (Token, error) {
	now := m.now()
	t := Token{ID: uuid.NewString(), ExpiresAt: now.Add(m.ttl).UTC()}
	claims := jwt.MapClaims{
		"sub": subject,
		"jti": t.ID,
		"iat": now.Unix(),
		"exp": t.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, err
	}
	t.Value = signed
	return t, nil
}

// Middleware rejects requests without a valid, unrevoked bearer token.
func (m *Manager) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     m.secret,
		SigningMethod:  "HS256",
		ContextKey:     contextKey,
		SuccessHandler: m.checkRevoked,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, "Admin session required")
		},
	})
}

func (m *Manager) checkRevoked(c *fiber.Ctx) error {
	claims, ok := FromContext(c)
	if !ok {
		return unauthorized(c, "Admin session required")
	}
	revoked, err := m.store.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		m.log.Error("session revocation lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
	}
	if revoked {
		return unauthorized(c, "Admin session revoked")
	}
	return c.Next()
}

// Revoke invalidates the token id until it would have expired.
func (m *Manager) Revoke(ctx context.Context, claims Claims) error {
	if claims.ID == "" {
		return errors.New("session: token has no id")
	}
	return m.store.Revoke(ctx, claims.ID, claims.ExpiresAt)
}

// FromContext returns the claims of the token verified by Middleware.
func FromContext(c *fiber.Ctx) (Claims, bool) {
	tok, ok := c.Locals(contextKey).(*jwt.Token)
	if !ok {
		return Claims{}, false
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}
	id, _ := mc["jti"].(string)
	if id == "" {
		return Claims{}, false
	}
	var exp time.Time
	switch v := mc["exp"].(type) {
	case float64:
		exp = time.Unix(int64(v), 0)
	case int64:
		exp = time.Unix(v, 0)
	}
	return Claims{ID: id, ExpiresAt: exp}, true
}

func unauthorized(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
}

package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/internal/conf"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

// Tokens issues and verifies the HS256 bearer tokens that carry a caller's
// address as their subject.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(ctx context.Context, c *conf.AuthConfig) (*Tokens, error) {
	secret := conf.StringNotEmpty(c.JWTSecret, "")
	if secret == "" {
		return nil, i18n.NewError(ctx, msgs.MsgMissingJWTSecret)
	}
	return &Tokens{
		secret: []byte(secret),
		issuer: conf.StringNotEmpty(c.Issuer, *conf.AuthDefaults.Issuer),
		ttl:    conf.DurationMin(c.TokenTTL, time.Second, *conf.AuthDefaults.TokenTTL),
		now:    time.Now,
	}, nil
}

// SetClock replaces the time source used for issuing and validating.
func (t *Tokens) SetClock(now func() time.Time) {
	t.now = now
}

// Issue signs a token for addr.
func (t *Tokens) Issue(addr sdk.Address) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   addr.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature, issuer and lifetime and returns the subject.
func (t *Tokens) Verify(ctx context.Context, token string) (sdk.Address, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", i18n.NewError(ctx, msgs.MsgInvalidBearerToken, err.Error())
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", i18n.NewError(ctx, msgs.MsgTokenMissingSubject)
	}
	return sdk.Address(claims.Subject), nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// authenticate attaches the call environment to every request. Reads may be
// anonymous; anything that changes state needs a valid token.
func (t *Tokens) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var sender sdk.Address
		if token := bearerToken(r); token != "" {
			addr, err := t.Verify(ctx, token)
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			sender = addr
		} else if r.Method != http.MethodGet {
			writeError(ctx, w, i18n.NewError(ctx, msgs.MsgMissingBearerToken))
			return
		}
		env := sdk.NewEnv(sender)
		ctx = log.WithLogField(ctx, "sender", sender.String())
		next.ServeHTTP(w, r.WithContext(sdk.WithEnv(ctx, env)))
	})
}

// Package identity проверяет bearer-токены внешнего сервиса идентификации
// и подписывает токены для демо-аккаунтов.
package identity

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims - содержимое токена: sub - id пользователя
type Claims struct {
	Username  string `json:"username"`
	Superuser bool   `json:"is_superuser,omitempty"`
	jwt.RegisteredClaims
}

// Identity - проверенная личность вызывающего без профиля
type Identity struct {
	UserID      int64
	Username    string
	IsSuperuser bool
}

type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret, issuer string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &Tokens{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Sign выпускает HS256-токен для пользователя
func (t *Tokens) Sign(id Identity) (string, error) {
	now := t.now()
	claims := Claims{
		Username:  id.Username,
		Superuser: id.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify проверяет подпись, срок и издателя
func (t *Tokens) Verify(raw string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return &Identity{UserID: userID, Username: claims.Username, IsSuperuser: claims.Superuser}, nil
}

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	actorKey    = "actor"
	supplierKey = "supplier"
)

var errMissingToken = errors.New("missing bearer token")

// Identity is what an access token asserts about its holder.
type Identity struct {
	Actor kernel.Actor
	// Supplier is the factory name a supplier actor works for.
	Supplier string
}

// Authenticator verifies HS256 access tokens carrying sub, role and an
// optional supplier claim.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) Authenticator {
	return Authenticator{secret: []byte(secret)}
}

// Issue signs a token for id, valid for ttl.
func (a Authenticator) Issue(id Identity, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id.Actor.ID,
		"role": id.Actor.Role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	if id.Supplier != "" {
		claims["supplier"] = id.Supplier
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse verifies tokenString and maps its claims to an Identity.
func (a Authenticator) Parse(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	tag, _ := claims["role"].(string)
	supplier, _ := claims["supplier"].(string)

	role, err := kernel.ParseRole(tag)
	if err != nil {
		return Identity{}, err
	}
	actor, err := kernel.NewActor(sub, role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Actor: actor, Supplier: strings.TrimSpace(supplier)}, nil
}

// Middleware reads the token from the Authorization header or, for
// browsers opening a WebSocket, from the token query parameter.
func (a Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			id, err := a.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(actorKey, id.Actor)
			c.Set(supplierKey, id.Supplier)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), nil
	}
	if token := c.QueryParam("token"); token != "" {
		return token, nil
	}
	return "", errMissingToken
}

func actorOf(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}

func supplierOf(c echo.Context) string {
	supplier, _ := c.Get(supplierKey).(string)
	return supplier
}

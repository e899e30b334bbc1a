package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserIDContextKey is the echo context key the authenticated user's UUID is
// stored under.
const UserIDContextKey = "user_id"

// Claims are the JWT claims of a user access token. The user UUID is carried
// in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTAuthMiddleware creates an Echo middleware verifying the Bearer access
// token: signature, expiry, and a parseable user UUID in the subject claim.
func JWTAuthMiddleware(secretKey string, log *zap.Logger) echo.MiddlewareFunc {
	log = log.Named("JWTAuth")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header missing")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			tokenString := parts[1]
			claims := &Claims{}

			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secretKey), nil
			})

			if err != nil {
				log.Warn("JWT parsing/validation error", zap.Error(err))
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, jwt.ErrTokenMalformed):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token is malformed")
				case errors.Is(err, jwt.ErrTokenSignatureInvalid):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token signature is invalid")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "Token validation failed")
				}
			}

			if !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is invalid")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil || userID == uuid.Nil {
				log.Warn("Token subject is not a valid user UUID", zap.String("subject", claims.Subject))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token: user ID missing")
			}

			c.Set(UserIDContextKey, userID)
			log.Debug("User authenticated via JWT", zap.String("userID", userID.String()))

			return next(c)
		}
	}
}

// GenerateTestJWT creates a signed token for a user.
// Intended for tests and local tooling only.
func GenerateTestJWT(userID uuid.UUID, secretKey string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rakaarfi/roster-system-be/internal/models"
	zlog "github.com/rs/zerolog/log"
)

const (
	jwtIssuer = "roster-app"

	// LocalsPrincipal is the fiber Locals key the auth middleware stores the caller under.
	LocalsPrincipal = "principal"
)

// Claims custom untuk JWT
type JwtClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (c *JwtClaims) Principal() models.Principal {
	return models.Principal{UserID: c.UserID, Name: c.Name, Role: c.Role, Email: c.Email}
}

var (
	jwtMu     sync.RWMutex
	jwtSecret []byte
	jwtTTL    = 72 * time.Hour
)

// InitJWT sets the signing secret and token lifetime. Call once at startup.
func InitJWT(secret string, ttl time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	jwtSecret = []byte(secret)
	if ttl > 0 {
		jwtTTL = ttl
	}
}

func signingKey() ([]byte, time.Duration, error) {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	if len(jwtSecret) == 0 {
		return nil, 0, errors.New("jwt secret is not configured")
	}
	return jwtSecret, jwtTTL, nil
}

func GenerateJWT(p models.Principal) (string, error) {
	secret, ttl, err := signingKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := JwtClaims{
		UserID: p.UserID,
		Name:   p.Name,
		Role:   p.Role,
		Email:  p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		zlog.Error().Err(err).Msg("Error signing token")
		return "", fmt.Errorf("error signing token: %w", err)
	}
	zlog.Debug().Str("user_id", p.UserID).Str("role", p.Role).Msg("Generated JWT token")
	return signedToken, nil
}

func ValidateJWT(tokenString string) (*JwtClaims, error) {
	secret, _, err := signingKey()
	if err != nil {
		return nil, err
	}
	token, err := jwt.ParseWithClaims(tokenString, &JwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Pastikan metode signing adalah HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(jwtIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		zlog.Warn().Err(err).Msg("Error parsing token")
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(*JwtClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractToken helper untuk mengambil token dari header Authorization
func ExtractToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return ""
	}
	return strings.TrimSpace(token)
}

// PrincipalFromCtx mengambil caller dari context Fiber (setelah middleware auth)
func PrincipalFromCtx(c *fiber.Ctx) (models.Principal, error) {
	p, ok := c.Locals(LocalsPrincipal).(models.Principal)
	if !ok {
		zlog.Warn().Msg("Could not extract principal from context")
		return models.Principal{}, errors.New("could not extract principal from context")
	}
	return p, nil
}

// ExtractStaffIDFromParam mengambil staff ID dari parameter URL.
// Nilainya disalin karena fiber menggunakan ulang buffer request.
func ExtractStaffIDFromParam(c *fiber.Ctx) (string, error) {
	id := fiberutils.CopyString(strings.TrimSpace(c.Params("staffId")))
	if id == "" {
		return "", errors.New("staff id parameter is required")
	}
	return id, nil
}

package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rakaarfi/roster-system-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Hour)
	p := models.Principal{UserID: "emp1", Name: "Dana", Role: models.RoleHR, Email: "dana@example.com"}

	token, err := GenerateJWT(p)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, p, claims.Principal())
	assert.Equal(t, "emp1", claims.Subject)
}

func TestValidateJWT_Rejects(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, JwtClaims{
		UserID:           "emp1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: jwtIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	forged, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	_, err = ValidateJWT(forged)
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JwtClaims{
		UserID:           "emp1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: jwtIssuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	stale, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ValidateJWT(stale)
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
}

func TestExtractToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(ExtractToken(c)) })

	tests := map[string]string{
		"Bearer abc.def": "abc.def",
		"bearer abc":     "abc",
		"Basic abc":      "",
		"abc":            "",
		"":               "",
	}
	for header, want := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body := make([]byte, 64)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, want, string(body[:n]), header)
	}
}

func TestBuildPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{CurrentPage: 2, PerPage: 10, TotalItems: 21, TotalPages: 3}, BuildPaginationMeta(21, 10, 2))
	assert.Equal(t, 0, BuildPaginationMeta(0, 10, 1).TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	app := fiber.New()
	var got PaginationQuery
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePaginationParams(c)
		return nil
	})

	tests := []struct {
		query string
		want  PaginationQuery
	}{
		{"", PaginationQuery{Page: 1, Limit: 10}},
		{"?page=3&limit=25", PaginationQuery{Page: 3, Limit: 25}},
		{"?page=0&limit=abc", PaginationQuery{Page: 1, Limit: 10}},
		{"?limit=500", PaginationQuery{Page: 1, Limit: MaxLimit}},
	}
	for _, tt := range tests {
		_, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.query)
	}
}

package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	zlog "github.com/rs/zerolog/log"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100 // Batas maksimum untuk limit
)

// PaginationQuery menampung parameter page & limit yang sudah divalidasi.
// Offset dihitung oleh repository.
type PaginationQuery struct {
	Page  int
	Limit int
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		zlog.Warn().Str(key+"_query", raw).Msgf("Invalid %s query parameter, using default", key)
		return fallback
	}
	return n
}

// ParsePaginationParams membaca parameter page & limit dari query string
func ParsePaginationParams(c *fiber.Ctx) PaginationQuery {
	page := queryInt(c, "page", DefaultPage)
	limit := queryInt(c, "limit", DefaultLimit)
	if limit > MaxLimit {
		zlog.Warn().Int("requested_limit", limit).Int("max_limit", MaxLimit).Msg("Requested limit exceeds maximum, capping")
		limit = MaxLimit
	}
	return PaginationQuery{Page: page, Limit: limit}
}

// PaginationMeta berisi metadata untuk response pagination
type PaginationMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

func BuildPaginationMeta(totalItems, limit, page int) PaginationMeta {
	totalPages := 0
	if totalItems > 0 && limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return PaginationMeta{
		CurrentPage: page,
		PerPage:     limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}

// PaginatedResponse adalah Response standar dengan metadata pagination
type PaginatedResponse[T any] struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []T            `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

func NewPaginatedResponse[T any](message string, data []T, meta PaginationMeta) PaginatedResponse[T] {
	return PaginatedResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

package middleware

import (
	"fmt"
	"strconv"
	"strings"

	apimodels "recruitment-backend/models/api"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit rejects requests declaring a body above limit. Paths with one of
// the skip prefixes (file uploads) are validated by their handlers.
func WithBodyLimit(limit int64, skipPrefixes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(
					fmt.Sprintf("Request body too large. Maximum allowed: %s", humanize.IBytes(uint64(limit)))))
			}
		}
		return c.Next()
	}
}

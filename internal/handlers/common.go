package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// queryInt extracts an integer query parameter, falling back to the default
// when the parameter is missing or not a number.
func queryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// baseURL reconstructs the request origin for building asset URLs.
func baseURL(c *fiber.Ctx) string {
	return c.Protocol() + "://" + c.Hostname()
}

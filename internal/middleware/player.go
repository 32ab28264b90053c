package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	PlayerIDHeader = "X-Player-ID"
	playerIDQuery  = "playerId"
)

// EnsurePlayerID stores the caller's player id under the "playerID" local.
// Browsers cannot set headers on a websocket handshake, so the query string
// is accepted as well.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("playerID").(string); ok {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get(PlayerIDHeader))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query(playerIDQuery))
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Send it in the " + PlayerIDHeader + " header or the playerId query parameter.",
			})
		}

		// Header and query values point into the request buffer, which
		// fasthttp reuses once this request is done
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}

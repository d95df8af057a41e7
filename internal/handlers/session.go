package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionCookie = "tv_session"

// sessionID returns the caller's session identifier, minting a new cookie on
// first contact. The cart and search history are keyed by this value; each
// session owns its persisted state exclusively.
func sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(sessionCookie); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}

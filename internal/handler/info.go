package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PersonCounter reports how many persons are stored
type PersonCounter interface {
	Count(ctx context.Context) (int, error)
}

// InfoHandler serves the human readable summary page
type InfoHandler struct {
	counter PersonCounter
	now     func() time.Time
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(counter PersonCounter) *InfoHandler {
	return &InfoHandler{
		counter: counter,
		now:     time.Now,
	}
}

// Info handles GET /info
func (h *InfoHandler) Info(c *fiber.Ctx) error {
	count, err := h.counter.Count(c.UserContext())
	if err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.SendString(fmt.Sprintf(
		"<p>Phonebook has info for %d people</p><p>%s</p>",
		count, h.now().Format(time.RFC1123Z),
	))
}

package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/domain"
	"github.com/phonebook/phonebook/internal/middleware"
	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

// PersonService is the business logic the persons handler depends on
type PersonService interface {
	List(ctx context.Context) ([]domain.Person, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, rawID string) (*domain.Person, error)
	Create(ctx context.Context, input domain.PersonInput) (*domain.Person, error)
	Update(ctx context.Context, rawID string, input domain.PersonInput) (*domain.Person, error)
	Delete(ctx context.Context, rawID string) error
}

// PersonsHandler handles person endpoints
type PersonsHandler struct {
	personService PersonService
	logger        *zap.Logger
}

// NewPersonsHandler creates a new persons handler
func NewPersonsHandler(personService PersonService, logger *zap.Logger) *PersonsHandler {
	return &PersonsHandler{
		personService: personService,
		logger:        logger,
	}
}

// ListPersons handles GET /api/persons
func (h *PersonsHandler) ListPersons(c *fiber.Ctx) error {
	people, err := h.personService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(people)
}

// GetPerson handles GET /api/persons/:id
func (h *PersonsHandler) GetPerson(c *fiber.Ctx) error {
	person, err := h.personService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(person)
}

// CreatePerson handles POST /api/persons
func (h *PersonsHandler) CreatePerson(c *fiber.Ctx) error {
	input, err := parsePersonInput(c)
	if err != nil {
		return err
	}

	person, err := h.personService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}

	middleware.RecordPersonMutation("create")
	h.logger.Debug("person created",
		zap.String("id", person.ID.String()),
		zap.String("request_id", middleware.GetRequestID(c)),
	)

	return c.JSON(person)
}

// UpdatePerson handles PUT /api/persons/:id
func (h *PersonsHandler) UpdatePerson(c *fiber.Ctx) error {
	input, err := parsePersonInput(c)
	if err != nil {
		return err
	}

	person, err := h.personService.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}

	middleware.RecordPersonMutation("update")
	return c.JSON(person)
}

// DeletePerson handles DELETE /api/persons/:id
func (h *PersonsHandler) DeletePerson(c *fiber.Ctx) error {
	if err := h.personService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}

	middleware.RecordPersonMutation("delete")
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers person routes on the /api/persons group
func (h *PersonsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.ListPersons)
	router.Post("/", h.CreatePerson)
	router.Get("/:id", h.GetPerson)
	router.Put("/:id", h.UpdatePerson)
	router.Delete("/:id", h.DeletePerson)
}

// parsePersonInput decodes a JSON body. An empty or non-JSON body decodes to
// the zero input so the service reports the missing name.
func parsePersonInput(c *fiber.Ctx) (domain.PersonInput, error) {
	var input domain.PersonInput
	if len(c.Body()) == 0 || !c.Is("json") {
		return input, nil
	}
	if err := c.BodyParser(&input); err != nil {
		return input, apperrors.BadRequest(apperrors.MessageMalformedBody).WithError(err)
	}
	return input, nil
}

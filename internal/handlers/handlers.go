package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/repository"
	"socialfeed/internal/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// httpError maps the service error taxonomy onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrPermission):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// pageOptions reads ?numItems= and ?cursor=, capping the page size.
func pageOptions(c *fiber.Ctx) repository.PageOptions {
	numItems, _ := strconv.Atoi(c.Query("numItems", strconv.Itoa(defaultPageSize)))
	if numItems <= 0 {
		numItems = defaultPageSize
	}
	if numItems > maxPageSize {
		numItems = maxPageSize
	}
	return repository.PageOptions{
		NumItems: numItems,
		Cursor:   c.Query("cursor"),
	}
}

// uid returns the authenticated user id, or "" for anonymous requests.
func uid(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}

func pathObjectID(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return bson.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return oid, nil
}

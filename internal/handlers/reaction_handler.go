package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/dto"
	"socialfeed/internal/services"
	"socialfeed/model"
)

// @Summary      React to a feed item
// @Description  One reaction per user per item; reacting again changes the type
// @Tags         reactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body  dto.AddReactionDTO  true  "Reaction payload"
// @Success      200  {object}  dto.ReactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /reactions [post]
func AddReaction(reactions *services.ReactionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		var body dto.AddReactionDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		itemID, err := bson.ObjectIDFromHex(body.FeedItemID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid feedItemId")
		}

		created, err := reactions.AddReaction(c.Context(), userID, itemID, model.ReactionType(body.ReactionType))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(dto.ReactionResponse{Created: created})
	}
}

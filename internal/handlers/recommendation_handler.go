package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/services"
	"socialfeed/model"
)

// @Summary      List recommendations
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max results"
// @Success      200  {array}  model.Recommendation
// @Router       /recommendations [get]
func ListRecommendations(recs *services.RecommendationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		result, err := recs.ListForUser(c.Context(), userID, limitQuery(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(result)
	}
}

// @Summary      Regenerate recommendations
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max new recommendations"
// @Success      200  {object}  dto.OKResponse
// @Router       /recommendations/generate [post]
func GenerateRecommendations(recs *services.RecommendationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		if err := recs.GenerateRecommendations(c.Context(), userID, limitQuery(c)); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      Mark a recommendation seen
// @Tags         recommendations
// @Produce      json
// @Security     BearerAuth
// @Param        contentId  path  string  true  "Recommended content ID (hex)"
// @Success      200  {object}  dto.OKResponse
// @Router       /recommendations/{contentId}/seen [post]
func MarkRecommendationSeen(recs *services.RecommendationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		contentID, err := pathObjectID(c, "contentId")
		if err != nil {
			return err
		}
		if err := recs.MarkSeen(c.Context(), userID, contentID); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      Mark a recommendation interacted
// @Tags         recommendations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        contentId  path  string                 true   "Recommended content ID (hex)"
// @Param        data       body  dto.MarkInteractedDTO  false  "Optional reaction"
// @Success      200  {object}  dto.OKResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /recommendations/{contentId}/interacted [post]
func MarkRecommendationInteracted(recs *services.RecommendationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		contentID, err := pathObjectID(c, "contentId")
		if err != nil {
			return err
		}
		var body dto.MarkInteractedDTO
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid body")
			}
		}
		if err := recs.MarkInteracted(c.Context(), userID, contentID, model.RecReaction(body.Reaction)); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/services"
)

func limitQuery(c *fiber.Ctx) int {
	n, _ := strconv.Atoi(c.Query("limit", "10"))
	return n
}

// @Summary      List topics
// @Tags         topics
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Param        limit     query  int     false  "Max results"
// @Success      200  {array}  model.Hashtag
// @Router       /topics [get]
func ListTopics(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := topics.ListTopics(c.Context(), c.Query("category"), limitQuery(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(result)
	}
}

// @Summary      Get a topic
// @Tags         topics
// @Produce      json
// @Param        id  path  string  true  "Topic ID (hex)"
// @Success      200  {object}  model.Hashtag
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /topics/{id} [get]
func GetTopic(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		topic, err := topics.GetTopic(c.Context(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(topic)
	}
}

// @Summary      Create or update a topic
// @Tags         topics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body  dto.UpsertTopicDTO  true  "Topic payload"
// @Success      200  {object}  dto.IDResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /topics [put]
func UpsertTopic(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid(c) == "" {
			return fiber.ErrUnauthorized
		}
		var body dto.UpsertTopicDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		id, err := topics.CreateOrUpdateTopic(c.Context(), services.UpsertTopicInput{
			Tag:         body.Tag,
			Category:    body.Category,
			Description: body.Description,
			CoverImage:  body.CoverImage,
		})
		if err != nil {
			return httpError(err)
		}
		return c.JSON(dto.IDResponse{ID: id.Hex()})
	}
}

// @Summary      Follow a topic
// @Description  Idempotent; first follow promotes the hashtag to a topic
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Topic ID (hex)"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /topics/{id}/follow [post]
func FollowTopic(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		if err := topics.FollowTopic(c.Context(), userID, id); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      Unfollow a topic
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Topic ID (hex)"
// @Success      200  {object}  dto.UnfollowResponse
// @Router       /topics/{id}/follow [delete]
func UnfollowTopic(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		removed, err := topics.UnfollowTopic(c.Context(), userID, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(dto.UnfollowResponse{Removed: removed})
	}
}

// @Summary      Check topic follow
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Topic ID (hex)"
// @Success      200  {object}  dto.FollowingResponse
// @Router       /topics/{id}/following [get]
func IsFollowingTopic(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		following, err := topics.IsFollowing(c.Context(), userID, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(dto.FollowingResponse{Following: following})
	}
}

// @Summary      Followed topics
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Hashtag
// @Router       /topics/followed [get]
func FollowedTopics(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		result, err := topics.FollowedTopics(c.Context(), userID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(result)
	}
}

// @Summary      Topic suggestions
// @Description  Topics followed by co-engaging users, popular topics as filler
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max results"
// @Success      200  {array}  model.Hashtag
// @Router       /topics/suggestions [get]
func TopicSuggestions(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		result, err := topics.TopicSuggestions(c.Context(), userID, limitQuery(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(result)
	}
}

// @Summary      Recommended hashtags
// @Description  Tags adjacent to the viewer's recent engagement
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max results"
// @Success      200  {array}  model.Hashtag
// @Router       /hashtags/recommended [get]
func RecommendedHashtags(topics *services.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		result, err := topics.RecommendedHashtags(c.Context(), userID, limitQuery(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(result)
	}
}

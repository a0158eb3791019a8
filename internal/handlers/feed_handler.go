package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/services"
)

// @Summary      Universal feed
// @Description  Public items, newest first, cursor-paginated
// @Tags         feed
// @Produce      json
// @Param        numItems  query  int     false  "Page size (max 50)"
// @Param        cursor    query  string  false  "Continuation cursor"
// @Success      200  {object}  services.FeedPage
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /feed [get]
func GetFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := feed.UniversalFeed(c.Context(), pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

// @Summary      Personalized feed
// @Description  Public items plus private items from self and followed users
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        numItems  query  int     false  "Page size (max 50)"
// @Param        cursor    query  string  false  "Continuation cursor"
// @Success      200  {object}  services.FeedPage
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /feed/personalized [get]
func GetPersonalizedFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		page, err := feed.PersonalizedFeed(c.Context(), userID, pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

// @Summary      Group feed
// @Tags         feed
// @Produce      json
// @Param        groupId   path   string  true   "Group ID"
// @Param        numItems  query  int     false  "Page size (max 50)"
// @Param        cursor    query  string  false  "Continuation cursor"
// @Success      200  {object}  services.FeedPage
// @Router       /feed/group/{groupId} [get]
func GetGroupFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := feed.GroupFeed(c.Context(), c.Params("groupId"), pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

// @Summary      Profile feed
// @Description  A user's items; other viewers only see public ones
// @Tags         feed
// @Produce      json
// @Param        profileId  path   string  true   "Profile user ID"
// @Param        numItems   query  int     false  "Page size (max 50)"
// @Param        cursor     query  string  false  "Continuation cursor"
// @Success      200  {object}  services.FeedPage
// @Router       /feed/user/{profileId} [get]
func GetProfileFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := feed.ProfileFeed(c.Context(), c.Params("profileId"), uid(c), pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

// @Summary      Hashtag feed
// @Tags         feed
// @Produce      json
// @Param        tag       path   string  true   "Hashtag (without #)"
// @Param        numItems  query  int     false  "Page size (max 50)"
// @Param        cursor    query  string  false  "Continuation cursor"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /feed/hashtag/{tag} [get]
func GetHashtagFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, hashtag, err := feed.HashtagFeed(c.Context(), c.Params("tag"), pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		resp := fiber.Map{
			"page":           page.Page,
			"continueCursor": page.ContinueCursor,
			"isDone":         page.IsDone,
		}
		if hashtag != nil {
			resp["hashtag"] = hashtag
		}
		return c.JSON(resp)
	}
}

// @Summary      Recommended content feed
// @Description  Public items from users with overlapping engagement
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        numItems  query  int     false  "Page size (max 50)"
// @Param        cursor    query  string  false  "Continuation cursor"
// @Success      200  {object}  services.FeedPage
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /feed/recommended [get]
func GetRecommendedFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		page, err := feed.RecommendedContent(c.Context(), userID, pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

// @Summary      Get a feed item
// @Tags         feed
// @Produce      json
// @Param        id  path  string  true  "Feed item ID (hex)"
// @Success      200  {object}  model.EnrichedFeedItem
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /feed/items/{id} [get]
func GetFeedItem(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		item, err := feed.GetItem(c.Context(), id, uid(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(item)
	}
}

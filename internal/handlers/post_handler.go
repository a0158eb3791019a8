package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/dto"
	"socialfeed/internal/services"
	"socialfeed/model"
)

// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body  dto.CreatePostDTO  true  "Post payload"
// @Success      201  {object}  dto.IDResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /posts [post]
func CreatePost(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		var body dto.CreatePostDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}

		id, err := posts.CreatePost(c.Context(), services.CreatePostInput{
			CreatorID:  userID,
			Content:    body.Content,
			MediaURLs:  body.MediaURLs,
			Visibility: model.Visibility(body.Visibility),
			ModuleType: model.ModuleType(body.ModuleType),
			ModuleID:   body.ModuleID,
		})
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id.Hex()})
	}
}

// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Post ID (hex)"
// @Param        data  body  dto.UpdatePostDTO  true  "Fields to update"
// @Success      200  {object}  dto.OKResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id} [patch]
func UpdatePost(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		var body dto.UpdatePostDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}

		in := services.UpdatePostInput{
			PostID:    id,
			UserID:    userID,
			Content:   body.Content,
			MediaURLs: body.MediaURLs,
		}
		if body.Visibility != nil {
			v := model.Visibility(*body.Visibility)
			in.Visibility = &v
		}
		if err := posts.UpdatePost(c.Context(), in); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      Delete a post
// @Description  Soft delete; reactions and comments stay for aggregates
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID (hex)"
// @Success      200  {object}  dto.OKResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id} [delete]
func DeletePost(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		if err := posts.DeletePost(c.Context(), id, userID); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      Share content
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Original content ID (hex)"
// @Param        data  body  dto.ShareContentDTO  true  "Share payload"
// @Success      201  {object}  dto.IDResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id}/share [post]
func ShareContent(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		var body dto.ShareContentDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}

		shareID, err := posts.ShareContent(c.Context(), services.ShareContentInput{
			CreatorID:         userID,
			OriginalContentID: id,
			Content:           body.Content,
			Visibility:        model.Visibility(body.Visibility),
			ModuleType:        model.ModuleType(body.ModuleType),
			ModuleID:          body.ModuleID,
		})
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: shareID.Hex()})
	}
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/dto"
	"socialfeed/internal/services"
	"socialfeed/model"
)

// @Summary      Add a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body  dto.AddCommentDTO  true  "Comment payload"
// @Success      201  {object}  dto.IDResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comments [post]
func AddComment(comments *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		var body dto.AddCommentDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}

		in := services.AddCommentInput{
			UserID:     userID,
			ParentID:   body.ParentID,
			ParentType: model.ParentType(body.ParentType),
			Content:    body.Content,
			MediaURLs:  body.MediaURLs,
		}
		if body.ParentCommentID != "" {
			oid, err := bson.ObjectIDFromHex(body.ParentCommentID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid parentCommentId")
			}
			in.ParentCommentID = &oid
		}

		id, err := comments.AddComment(c.Context(), in)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id.Hex()})
	}
}

// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "Comment ID (hex)"
// @Param        data  body  dto.UpdateCommentDTO  true  "Fields to update"
// @Success      200  {object}  dto.OKResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comments/{id} [patch]
func UpdateComment(comments *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		var body dto.UpdateCommentDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}

		if err := comments.UpdateComment(c.Context(), services.UpdateCommentInput{
			CommentID: id,
			UserID:    userID,
			AsAdmin:   body.AsAdmin,
			Content:   body.Content,
			MediaURLs: body.MediaURLs,
		}); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "Comment ID (hex)"
// @Param        asAdmin  query  bool    false  "Moderator override"
// @Success      200  {object}  dto.OKResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comments/{id} [delete]
func DeleteComment(comments *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := uid(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		asAdmin := c.Query("asAdmin") == "true"
		if err := comments.DeleteComment(c.Context(), id, userID, asAdmin); err != nil {
			return httpError(err)
		}
		return c.JSON(dto.OKResponse{OK: true})
	}
}

// @Summary      List comments
// @Description  Root comments under a parent, newest or oldest first
// @Tags         comments
// @Produce      json
// @Param        parentId    query  string  true   "Parent ID"
// @Param        parentType  query  string  true   "Parent type"
// @Param        order       query  string  false  "newest|oldest"
// @Param        numItems    query  int     false  "Page size (max 50)"
// @Param        cursor      query  string  false  "Continuation cursor"
// @Success      200  {object}  services.CommentPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /comments [get]
func ListComments(comments *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parentID := c.Query("parentId")
		if parentID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "parentId is required")
		}
		page, err := comments.ListComments(c.Context(), parentID,
			model.ParentType(c.Query("parentType", string(model.ParentTypeFeedItem))),
			c.Query("order", "newest"), pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

// @Summary      List replies
// @Description  Replies to a comment, oldest first
// @Tags         comments
// @Produce      json
// @Param        id        path   string  true   "Comment ID (hex)"
// @Param        numItems  query  int     false  "Page size (max 50)"
// @Param        cursor    query  string  false  "Continuation cursor"
// @Success      200  {object}  services.CommentPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /comments/{id}/replies [get]
func ListReplies(comments *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathObjectID(c, "id")
		if err != nil {
			return err
		}
		page, err := comments.ListReplies(c.Context(), id, pageOptions(c))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(page)
	}
}

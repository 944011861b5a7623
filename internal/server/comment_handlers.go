package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req service.CreateCommentInput
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListComments handles GET /comments?postId=&authorId=
// postId takes precedence when both are given.
func (s *Server) ListComments(c *fiber.Ctx) error {
	postID, err := s.parseOptionalID(c, "postId")
	if err != nil {
		return nil
	}
	authorID, err := s.parseOptionalID(c, "authorId")
	if err != nil {
		return nil
	}

	comments, err := s.queryService.ListComments(c.UserContext(), postID, authorID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(comments)
}

// GetComment handles GET /comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.queryService.GetComment(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(comment)
}

// UpdateComment handles PATCH /comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var patch models.CommentPatch
	if err := s.parseBody(c, &patch); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), id, patch)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

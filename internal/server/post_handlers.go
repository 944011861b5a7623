package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts handles GET /posts?authorId=
func (s *Server) ListPosts(c *fiber.Ctx) error {
	authorID, err := s.parseOptionalID(c, "authorId")
	if err != nil {
		return nil
	}

	posts, err := s.queryService.ListPosts(c.UserContext(), authorID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.queryService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PATCH /posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var patch models.PostPatch
	if err := s.parseBody(c, &patch); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, patch)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

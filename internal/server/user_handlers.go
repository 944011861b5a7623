package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserInput
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers handles GET /users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.queryService.ListUsers(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(users)
}

// GetUser handles GET /users/:id. The user comes back with its posts and comments.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.queryService.GetUser(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(user)
}

// UpdateUser handles PATCH /users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var patch models.UserPatch
	if err := s.parseBody(c, &patch); err != nil {
		return nil
	}

	user, err := s.userService.UpdateUser(c.UserContext(), id, patch)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return s.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

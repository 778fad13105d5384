package server

import (
	"errors"
	"modelchat/app/provider"
	"modelchat/app/service/conversation"

	"github.com/elliotchance/pie/v2"
	"github.com/gofiber/fiber/v2"
)

type submitRequest struct {
	Text string `json:"text"`
}

type selectModelRequest struct {
	Model string `json:"model"`
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (s *Service) handleListMessages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"messages":  s.conversationSvc.Snapshot(),
		"model":     s.conversationSvc.Selected(),
		"in_flight": s.conversationSvc.InFlight(),
	})
}

func (s *Service) handleSubmitMessage(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	// exchanges outlive the request, so they run on the app context
	msg, err := s.exchangeSvc.Submit(s.appCtx, req.Text)

	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text must not be empty"})
	case errors.Is(err, conversation.ErrExchangeInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "an exchange is already in flight"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": msg})
}

func (s *Service) handleGetModel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"model": s.conversationSvc.Selected(),
		"available": pie.Map(provider.All(), func(id provider.ID) string {
			return string(id)
		}),
	})
}

func (s *Service) handleSelectModel(c *fiber.Ctx) error {
	var req selectModelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	id, ok := provider.Parse(req.Model)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown model: " + req.Model})
	}

	if err := s.conversationSvc.Select(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"model": id})
}

func (s *Service) handleReset(c *fiber.Ctx) error {
	s.conversationSvc.Reset()

	return c.JSON(fiber.Map{"ok": true})
}

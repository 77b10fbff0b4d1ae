package server

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// fallbackModeler is implemented by providers that can name a model when
// their catalog is unreachable.
type fallbackModeler interface {
	DefaultModel() string
}

func (s *Server) health(c *fiber.Ctx) error {
	return writeJSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// resolveProvider picks the request's provider, else the configured default.
func (s *Server) resolveProvider(requested string) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = s.cfg.DefaultProvider
	}
	if name == "" {
		name = models.DefaultProvider
	}
	return strings.ToLower(name)
}

func (s *Server) listModels(c *fiber.Ctx) error {
	name := s.resolveProvider(c.Query("provider"))
	p, err := s.registry.Get(name)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	names, err := p.ListModels(c.UserContext())

	if fm, ok := p.(fallbackModeler); ok {
		if err != nil {
			s.log.Warn().Err(err).Str("provider", name).Msg("model list failed, using default model")
		}
		if err != nil || len(names) == 0 {
			names = []string{fm.DefaultModel()}
		}
		return writeJSON(c, fiber.StatusOK, models.ModelsResponse{Models: names})
	}

	if err != nil {
		s.log.Error().Err(err).Str("provider", name).Msg("model list failed")
		return writeError(c, statusFor(err), apierrors.UserMessage(err))
	}
	if names == nil {
		names = []string{}
	}
	return writeJSON(c, fiber.StatusOK, models.ModelsResponse{Models: names})
}

func (s *Server) chat(c *fiber.Ctx) error {
	// Malformed bodies are treated as empty
	var req models.ChatRequest
	_ = json.Unmarshal(c.Body(), &req)

	message, err := s.validateMessage(req.Message)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	name := s.resolveProvider(req.Provider)
	p, err := s.registry.Get(name)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	history := trimEcho(models.NormalizeHistory(req.History, s.cfg.MaxHistory), message)
	model := strings.TrimSpace(req.Model)

	reply, err := p.Send(c.UserContext(), message, history, model)
	if err != nil {
		s.log.Error().Err(err).
			Str("provider", name).
			Str("model", model).
			Str("request_id", requestIDFrom(c)).
			Msg("chat failed")
		return writeError(c, statusFor(err), apierrors.UserMessage(err))
	}

	return writeJSON(c, fiber.StatusOK, models.ChatResponse{Reply: reply})
}

func (s *Server) validateMessage(raw string) (string, error) {
	message := strings.TrimSpace(raw)
	if message == "" {
		return "", apierrors.NewEmptyMessageError()
	}
	if limit := s.cfg.MaxMessageChars; limit > 0 && utf8.RuneCountInString(message) > limit {
		return "", apierrors.NewValidationError("Message is too long (max %d).", limit)
	}
	return message, nil
}

// trimEcho drops a trailing user turn equal to message. The widget sends
// its history including the turn being submitted, and providers append the
// message themselves.
func trimEcho(history []models.Turn, message string) []models.Turn {
	if n := len(history); n > 0 {
		last := history[n-1]
		if last.Role == models.RoleUser && last.Content == message {
			return history[:n-1]
		}
	}
	return history
}

func statusFor(err error) int {
	if apierrors.IsValidationError(err) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

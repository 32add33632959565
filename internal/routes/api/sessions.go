package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/draughts/internal/draughts"
	"github.com/lk16/draughts/internal/models"
	"github.com/lk16/draughts/internal/registry"
	"github.com/lk16/draughts/internal/repository"
)

var errInvalidBody = errors.New("invalid request body")

// errorStatus maps an error to the HTTP status code it is reported with.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, registry.ErrSessionNotFound), errors.Is(err, repository.ErrResultNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errInvalidBody),
		errors.Is(err, registry.ErrInvalidHandle),
		errors.Is(err, draughts.ErrInvalidCoordinate):
		return fiber.StatusBadRequest
	case errors.Is(err, draughts.ErrGameAlreadyOver):
		return fiber.StatusConflict
	case errors.Is(err, draughts.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, registry.ErrTooManySessions):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, repository.ErrArchiveDisabled):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// parseMove reads and validates a move from the request body.
func parseMove(c *fiber.Ctx) (models.MoveRequest, error) {
	var move models.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return models.MoveRequest{}, errInvalidBody
	}

	if err := move.Validate(); err != nil {
		return models.MoveRequest{}, err
	}

	return move, nil
}

// CreateSession starts a new game.
func CreateSession(c *fiber.Ctx) error {
	repo := repository.NewSessionRepository(c)
	resp, err := repo.Create(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession returns the full state of a game.
func GetSession(c *fiber.Ctx) error {
	repo := repository.NewSessionRepository(c)
	resp, err := repo.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetBoard returns the board of a game in cell codes.
func GetBoard(c *fiber.Ctx) error {
	repo := repository.NewSessionRepository(c)
	resp, err := repo.Board(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ValidateMove checks a move without playing it.
func ValidateMove(c *fiber.Ctx) error {
	move, err := parseMove(c)
	if err != nil {
		return errorResponse(c, err)
	}

	repo := repository.NewSessionRepository(c)
	resp, err := repo.Validate(c.Context(), c.Params("id"), move)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// PlayMove validates and plays a move.
func PlayMove(c *fiber.Ctx) error {
	move, err := parseMove(c)
	if err != nil {
		return errorResponse(c, err)
	}

	repo := repository.NewSessionRepository(c)
	resp, err := repo.Play(c.Context(), c.Params("id"), move)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteSession ends a game and forgets it.
func DeleteSession(c *fiber.Ctx) error {
	repo := repository.NewSessionRepository(c)
	if err := repo.Destroy(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetResult returns the archived result of a finished game.
func GetResult(c *fiber.Ctx) error {
	repo := repository.NewSessionRepository(c)
	resp, err := repo.Result(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetStats returns counters over all games.
func GetStats(c *fiber.Ctx) error {
	repo := repository.NewSessionRepository(c)
	resp, err := repo.Stats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

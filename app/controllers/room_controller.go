package controllers

import (
	"context"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/game"
	"github.com/DedS3t/twoworlds-backend/pkg/errs"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Archive answers for rooms that are no longer live.
type Archive interface {
	VerifyRoom(ctx context.Context, roomId string) (bool, error)
}

type RoomController struct {
	Service *game.Service
	Archive Archive
}

func status(err error) int {
	switch errs.KindOf(err) {
	case errs.NotFound:
		return fiber.StatusNotFound
	case errs.InvalidTransition, errs.ConcurrencyConflict:
		return fiber.StatusConflict
	case errs.ConstraintViolation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	code := status(err)
	if code == fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": errs.Message(err)})
}

func (rc *RoomController) CreateRoom(c *fiber.Ctx) error {
	dto := new(models.CreateRoomDto)
	if err := c.BodyParser(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	room, err := rc.Service.CreateRoom(c.Context(), dto.RoomId, dto.PlayerIds())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"roomId": room.Id})
}

func (rc *RoomController) VerifyRoom(c *fiber.Ctx) error {
	dto := new(models.VerifyRoomDto)
	if err := c.QueryParser(dto); err != nil || dto.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing code"})
	}

	_, err := rc.Service.Room(c.Context(), dto.Code)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"status": true})
	case !errs.Is(err, errs.NotFound):
		return fail(c, err)
	case rc.Archive == nil:
		return c.JSON(fiber.Map{"status": false})
	}

	found, err := rc.Archive.VerifyRoom(c.Context(), dto.Code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": found})
}

func (rc *RoomController) GetRoom(c *fiber.Ctx) error {
	room, err := rc.Service.Room(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(room)
}

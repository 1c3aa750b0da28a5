package routes

import (
	"github.com/DedS3t/twoworlds-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func RoomRoutes(a *fiber.App, rc *controllers.RoomController) {
	route := a.Group("/room")
	route.Post("/create", rc.CreateRoom)
	route.Get("/verify", rc.VerifyRoom)
	route.Get("/:id", rc.GetRoom)
}

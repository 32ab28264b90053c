package controller

import (
	"errors"
	"log"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps a service or engine error to the HTTP status sent back.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrMoveFormat),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrAmbiguousMove),
		errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, service.ErrUnknownPiece):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrGameOver),
		errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrGameFull),
		errors.Is(err, store.ErrStaleHistory):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotInGame):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	gameID, err := gc.gameService.CreateGame(playerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   model.White,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := utils.CopyString(c.Params("gameId"))
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	return c.JSON(gc.gameService.ListGames())
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := utils.CopyString(c.Params("gameId"))

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := utils.CopyString(c.Params("gameId"))
	playerID := c.Locals("playerID").(string)

	var payload ws.MovePayload
	if err := c.BodyParser(&payload); err != nil || payload.Move == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body must be {\"move\": \"<notation>\"}",
		})
	}

	gameState, err := gc.gameService.HandleMove(gameID, playerID, payload.Move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	gameID := utils.CopyString(c.Params("gameId"))
	square := c.Params("square")

	moves, err := gc.gameService.LegalMoves(gameID, square)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  moves,
	})
}

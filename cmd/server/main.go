package main

import (
	"flag"
	"log"
	"os"

	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

type config struct {
	addr    string
	origins string
}

// loadConfig reads the flags; CHESS_ADDR and CHESS_ORIGINS override them.
func loadConfig(args []string, getenv func(string) string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", ":3000", "address to listen on")
	fs.StringVar(&cfg.origins, "origins", "http://localhost:5173", "comma separated origins allowed by CORS")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if addr := getenv("CHESS_ADDR"); addr != "" {
		cfg.addr = addr
	}
	if origins := getenv("CHESS_ORIGINS"); origins != "" {
		cfg.origins = origins
	}
	return cfg, nil
}

func newApp(cfg config, gameService *service.GameService) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId",
		middleware.WebSocketUpgrade(gameService.GameExists),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	api.Get("/games", gameController.ListGames)

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Get("/:gameId/moves/:square", gameController.LegalMoves)

	return app
}

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal(err)
	}

	gameManager := service.NewGameManager(store.NewMemoryStore())
	gameService := service.NewGameService(gameManager)

	app := newApp(cfg, gameService)
	log.Printf("listening on %s", cfg.addr)
	log.Fatal(app.Listen(cfg.addr))
}

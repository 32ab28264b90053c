package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

func TestLoadConfig(t *testing.T) {
	noEnv := func(string) string { return "" }

	cfg, err := loadConfig(nil, noEnv)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.addr != ":3000" || cfg.origins != "http://localhost:5173" {
		t.Fatalf("defaults = %+v", cfg)
	}

	cfg, err = loadConfig([]string{"-addr", ":8080"}, noEnv)
	if err != nil || cfg.addr != ":8080" {
		t.Fatalf("flag: %+v, %v", cfg, err)
	}

	env := map[string]string{"CHESS_ADDR": ":9000", "CHESS_ORIGINS": "https://chess.example"}
	cfg, err = loadConfig([]string{"-addr", ":8080"}, func(k string) string { return env[k] })
	if err != nil || cfg.addr != ":9000" || cfg.origins != "https://chess.example" {
		t.Fatalf("env: %+v, %v", cfg, err)
	}

	if _, err := loadConfig([]string{"-port", "1"}, noEnv); err == nil {
		t.Fatalf("unknown flag accepted")
	}
}

func TestRoutes(t *testing.T) {
	gameService := service.NewGameService(service.NewGameManager(store.NewMemoryStore()))
	gameID, err := gameService.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	app := newApp(config{addr: ":0", origins: "http://localhost:5173"}, gameService)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/games", fiber.StatusOK},
		{http.MethodGet, "/api/game/" + gameID, fiber.StatusOK},
		{http.MethodGet, "/api/game/" + gameID + "/moves/e2", fiber.StatusOK},
		{http.MethodGet, "/ws/game/" + gameID, fiber.StatusUpgradeRequired},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set(middleware.PlayerIDHeader, "alice")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tt.method, tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Fatalf("%s %s: status %d, want %d", tt.method, tt.path, resp.StatusCode, tt.want)
		}
	}
}

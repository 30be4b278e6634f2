package main

import (
	"context"
	"log/slog"
	"os"
)

// @title           Article Inventory API
// @version         1.0
// @description     CRUD API for inventory articles guarded by a shared API key.
// @BasePath        /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description Shared secret configured by API_KEY_SECRET.

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

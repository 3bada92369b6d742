package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gradepoint/gradepoint-backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	application.Log.Info("Starting server...", "port", port)
	if err := application.Run(":" + port); err != nil {
		application.Log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

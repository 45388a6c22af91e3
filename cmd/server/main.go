package main

import (
	"os"

	"questforge/internal/app"
)

// @title           QuestForge API
// @version         1.0
// @description     Gamified productivity tracker with an AI co-founder assistant.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}

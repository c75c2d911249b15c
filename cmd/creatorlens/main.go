package main

import (
	"creatorlens/cmd/handlers"
	"creatorlens/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}

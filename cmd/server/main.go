package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/app"
)

func main() {
	// .env.local опционален: в контейнере конфигурация приходит окружением.
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Cleanup()

	if err := a.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// Команда devtoken выпускает access токен для локальной проверки API:
//
//	go run ./cmd/devtoken -user 7f1c... -ttl 1h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

func main() {
	userFlag := flag.String("user", "", "id пользователя (по умолчанию новый UUID)")
	ttl := flag.Duration("ttl", time.Hour, "время жизни токена")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("devtoken: ошибка загрузки конфигурации: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("devtoken: выпуск токенов в production запрещён")
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("devtoken: некорректный id пользователя: %v", err)
		}
	}

	token, err := service.NewTokenManager(cfg.JWTSecret, *ttl).GenerateAccess(userID)
	if err != nil {
		log.Fatalf("devtoken: не удалось выпустить токен: %v", err)
	}

	fmt.Printf("user_id: %s\ntoken:   %s\n", userID, token)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m04kA/SMC-CourtService/internal/config"
)

// Мигратор схемы БД. Запуск:
//
//	go run ./cmd/migrate -action up
//	go run ./cmd/migrate -action down
func main() {
	var (
		configPath = flag.String("config", "config.toml", "путь к конфигурации")
		action     = flag.String("action", "up", "up | down | drop")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	mig, err := migrate.New("file://migrations", connStr)
	if err != nil {
		fmt.Printf("Failed to create migrate instance: %v\n", err)
		os.Exit(1)
	}
	defer mig.Close()

	switch *action {
	case "up":
		err = mig.Up()
	case "down":
		err = mig.Steps(-1)
	case "drop":
		err = mig.Drop()
	default:
		fmt.Printf("Unknown action: %s\n", *action)
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied successfully")
}

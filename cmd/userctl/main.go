package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/userboard/userboard/config"
	"github.com/userboard/userboard/internal/cli"
	"github.com/userboard/userboard/pkg/client"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := cli.New(client.New(cfg.APIBaseURL), os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("userctl: %v", err)
	}
}

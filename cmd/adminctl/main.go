package main

import (
	"context"
	"log"
	"os"

	"github.com/mverner/teambook/internal/adminctl"
	"github.com/mverner/teambook/internal/config"
	"github.com/mverner/teambook/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := adminctl.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	args := flagx.StripFlags(os.Args[1:], config.Flags)
	if err := app.Run(ctx, args, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}

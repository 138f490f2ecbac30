// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"codeberg.org/qrmenu/qrmenu-server/internal/config"
	"codeberg.org/qrmenu/qrmenu-server/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "qrmenu-server",
		Usage:  "Multi-tenant restaurant menu server",
		Flags:  config.Flags(),
		Action: server.Run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// Package main boots the interactive Shop Cart Simulator.
package main

import (
	"os"

	"github.com/fairyhunter13/shop-cart-simulator/internal/cli"
	"github.com/fairyhunter13/shop-cart-simulator/internal/config"
	"github.com/fairyhunter13/shop-cart-simulator/internal/obs"
	"github.com/fairyhunter13/shop-cart-simulator/internal/store"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("session_starting", "store", cfg.StoreName, "page_size", cfg.PageSize)

	cat := store.New()
	cat.Seed(store.DefaultProducts())

	sess := cli.NewSession(cfg, cat, os.Stdin, os.Stdout)
	sess.Run()

	obs.Logger.Info("session_ended")
}

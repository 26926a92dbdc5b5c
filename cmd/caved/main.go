// Command caved serves in-memory cave runs over HTTP.
package main

import (
	"log"
	"os"

	"cavegen/internal/config"
	"cavegen/internal/httpapi"
	"cavegen/internal/session"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	cfg := loadConfig()

	h := httpapi.Handler{
		Store:    session.NewStore(cfg.Limits.MaxSessions),
		Defaults: cfg.Cave,
		Limits:   cfg.Limits,
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr()))
	h.RegisterRoutes(s)

	hlog.Infof("caved listening on %s (default cave %dx%d, %d%% walls)",
		cfg.Server.Addr(), cfg.Cave.Width, cfg.Cave.Height, cfg.Cave.WallPercent)
	s.Spin()
}

func loadConfig() *config.Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		cfg := config.Default()
		log.Println("CONFIG_PATH not set, using built-in defaults")
		return &cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}
	log.Printf("configuration loaded from %s", path)
	return cfg
}

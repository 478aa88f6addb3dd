// PipeCut server - HTTP API for materials, required cuts and cut plans.
//
// Configuration comes from the environment or a .env file:
//
//	PORT          listen port (default 8000)
//	DATABASE_URL  postgres DSN; sqlite is used when unset
//	DATA_PATH     sqlite file (default pipecut.db)
//	PIPECUT_TRIM  trim allowance in mm (default 110)
//	PIPECUT_KERF  saw kerf in mm (default 2)
package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/PipeCut/internal/api"
	"github.com/piwi3910/PipeCut/internal/config"
	"github.com/piwi3910/PipeCut/internal/store"
)

func main() {
	if p := config.LoadEnvFile(); p != "" {
		log.Printf("Loaded environment from %s", p)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	s, err := store.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		log.Fatalf("could not open store: %v", err)
	}
	defer s.Close()

	r := api.Router(&api.Handler{Store: s, Settings: cfg.Settings})

	log.Printf("Server starting on port %s (trim %.1f mm, kerf %.1f mm)", cfg.Port, cfg.Settings.Trim, cfg.Settings.Kerf)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}

package main

import (
	"bitwise74/user-api/app"
	"bitwise74/user-api/config"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Setup()
	if err != nil {
		if errors.Is(err, config.ErrMissingSecret) {
			fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + config.GenSecret() + "\n\nPaste it into your config.toml file.")
			os.Exit(0)
		}

		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := app.NewRouter(ctx, cfg)
	if err != nil {
		panic(err)
	}

	addr := fmt.Sprintf(":%d", cfg.Host.Port)
	zap.L().Info("Server starting", zap.String("addr", addr), zap.String("domain", cfg.Host.Domain))

	if cfg.Host.SSL.Enabled {
		err = r.RunTLS(addr, cfg.Host.SSL.CertificatePath, cfg.Host.SSL.CertificateKeyPath)
	} else {
		err = r.Run(addr)
	}

	if err != nil {
		panic(err)
	}
}

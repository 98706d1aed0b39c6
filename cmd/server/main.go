package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Srengsophea/instantly-email-service/internal/api"
	"github.com/Srengsophea/instantly-email-service/internal/app"
	"github.com/Srengsophea/instantly-email-service/internal/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()
	if *cfgFile != "" {
		viper.SetConfigFile(*cfgFile)
	}

	/* ---------- core ---------- */
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		logrus.Fatalf("init: %v", err)
	}

	/* ---------- HTTP layer ---------- */
	router := api.SetupRouter(a)
	a.SetWebRouter(router)

	addr := fmt.Sprintf("%s:%d", cfg.WebHost, cfg.WebPort)
	go func() {
		logrus.WithField("addr", addr).Info("http listening")
		if err := router.Run(addr); err != nil {
			logrus.Fatalf("http: %v", err)
		}
	}()

	/* ---------- shutdown ---------- */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown")
}

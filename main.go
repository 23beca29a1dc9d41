package main

import (
	"flag"
	"os"

	"nis2-copilot/config"
	"nis2-copilot/core/appbootstrap"
	"nis2-copilot/core/utils"
)

func main() {
	configPath := flag.String("config", os.Getenv("NIS2C_CONFIG"), "path to yaml config (optional, env overrides)")
	flag.Parse()

	logger := utils.NewLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}
	if err := appbootstrap.Run(cfg, logger); err != nil {
		logger.Errorf("fatal: %v", err)
		os.Exit(1)
	}
}

// Command fundbook reconciles funding payments from Binance USD-M futures
// and realized PnL from open Bybit linear positions into one ledger and
// writes details and summary CSV tables.
//
// Usage:
//
//	fundbook --config config.yaml
//	fundbook --starttime 1762732800000 --outputdir reports
//
// Required environment variables:
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit (optional): BYBIT_API_KEY, BYBIT_API_SECRET
//
// A .env file in the working directory is loaded if present.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vadiminshakov/fundbook/config"
	"github.com/vadiminshakov/fundbook/internal"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reporter, err := internal.NewReporter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build reporter", zap.Error(err))
	}

	if _, err := reporter.Run(context.Background(), logger); err != nil {
		logger.Fatal("report run failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"os"

	"finance/internal/amqp"
	"finance/internal/cli"
	applog "finance/internal/log"
	gsheet "finance/internal/sheets/google"
	"finance/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateWorkerConfig(applog.NewDefault())
	logger := cli.SetupLogger(cfg)
	logger.Info("Starting finance-worker", applog.FieldOperation, applog.OpStartup)

	sheetsClient, err := gsheet.NewFromSettings(context.Background(), gsheet.Settings{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		SheetName:          cfg.GoogleSheetName,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", sheetsClient.SheetName())

	mirror := worker.NewMirrorWorker(sheetsClient, logger)

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, nil)

	dial := func(context.Context) (worker.Consumer, error) {
		c, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	logger.Info("Consuming transaction events",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	if err := mirror.Run(ctx, dial); err != nil {
		logger.Error("Worker stopped with error", applog.FieldError, err.Error())
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}

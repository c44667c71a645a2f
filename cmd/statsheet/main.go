package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/statsheet/internal/api/espn"
	"github.com/omarshaarawi/statsheet/internal/api/fantasy"
	"github.com/omarshaarawi/statsheet/internal/config"
	"github.com/omarshaarawi/statsheet/internal/notify"
	"github.com/omarshaarawi/statsheet/internal/report"
	"github.com/omarshaarawi/statsheet/internal/repository/memory"
	"github.com/omarshaarawi/statsheet/internal/sheets"
	"github.com/omarshaarawi/statsheet/internal/stats"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	repo := memory.NewRepository()
	provider := fantasy.NewAPI(espnAPI, repo)
	engine := stats.NewEngine(provider)

	ctx := context.Background()
	backend, err := sheets.NewGoogleBackend(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
	if err != nil {
		return err
	}
	manager := sheets.NewManager(backend)
	generator := report.NewGenerator(engine, manager)

	week, err := provider.CurrentWeek()
	if err != nil {
		return err
	}
	slog.Info("Generating report", "through_week", week)

	summarySheet := cfg.Sheets.SummarySheet
	exists, err := manager.SheetExists(summarySheet)
	if err != nil {
		return err
	}
	if !exists {
		if err := manager.CreateSheet(summarySheet); err != nil {
			return err
		}
		if err := manager.DeleteOtherSheets(summarySheet); err != nil {
			return err
		}
	}

	if err := generator.Summary(summarySheet, stats.WeekRange(1, week)); err != nil {
		return err
	}
	slog.Info("Summary sheet written", "sheet", summarySheet, "weeks", week)

	weeksWritten := 0
	for w := 1; w <= week; w++ {
		sheetName := fmt.Sprintf("Week %d", w)
		exists, err := manager.SheetExists(sheetName)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := manager.CreateSheet(sheetName); err != nil {
			return err
		}
		if err := generator.WeekSheet(sheetName, w); err != nil {
			return err
		}
		slog.Info("Week sheet written", "sheet", sheetName)
		weeksWritten++
	}

	if cfg.Telegram.Token != "" {
		notifier, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			slog.Error("Error creating notifier", "error", err)
			return nil
		}
		message := fmt.Sprintf("📈 *Stat sheet updated*\nSummary covers weeks 1-%d, %d new week sheet(s).", week, weeksWritten)
		if err := notifier.Send(message); err != nil {
			slog.Error("Error sending notification", "error", err)
		}
	}

	return nil
}

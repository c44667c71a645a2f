package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("YEAR", "2023")
	t.Setenv("LEAGUE_ID", "12345")
	t.Setenv("SWID", "{swid}")
	t.Setenv("ESPN_S2", "s2-cookie")
	t.Setenv("SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "credentials.json")
}

func TestNew(t *testing.T) {
	setRequired(t)
	t.Setenv("SUMMARY_SHEET", "Season")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CHAT_ID", "-100123")

	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.ESPNAPI.LeagueID != "12345" {
		t.Errorf("LeagueID = %q; want 12345", c.ESPNAPI.LeagueID)
	}
	if c.Sheets.SummarySheet != "Season" {
		t.Errorf("SummarySheet = %q; want Season", c.Sheets.SummarySheet)
	}
	if c.Telegram.ChatID != -100123 {
		t.Errorf("ChatID = %d; want -100123", c.Telegram.ChatID)
	}
}

func TestNewSummarySheetDefault(t *testing.T) {
	setRequired(t)
	t.Setenv("SUMMARY_SHEET", "")

	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Sheets.SummarySheet != "Summary" {
		t.Errorf("SummarySheet = %q; want Summary", c.Sheets.SummarySheet)
	}
}

func TestNewMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("ESPN_S2", "")

	if _, err := New(); err == nil {
		t.Error("expected error when ESPN_S2 is unset")
	}
}

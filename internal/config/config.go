package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	ESPNAPI  ESPNAPI
	Sheets   Sheets
	Telegram Telegram
}

type ESPNAPI struct {
	Year     string `envconfig:"YEAR" required:"true"`
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	SWID     string `envconfig:"SWID" required:"true"`
	ESPNS2   string `envconfig:"ESPN_S2" required:"true"`
}

type Sheets struct {
	SpreadsheetID   string `envconfig:"SPREADSHEET_ID" required:"true"`
	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" required:"true"`
	SummarySheet    string `envconfig:"SUMMARY_SHEET" default:"Summary"`
}

// Telegram is optional: when Token is empty the run-completion
// notification is skipped.
type Telegram struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

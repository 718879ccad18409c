package util

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func TimePtr(t time.Time) *time.Time {
	return &t
}

func StringPtr(s string) *string {
	return &s
}

func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

type Config struct {
	Port             int      `json:"port"`
	ProviderBaseURL  string   `json:"providerBaseUrl"`
	IPOCalendarURL   string   `json:"ipoCalendarUrl"`
	DefaultFunds     []string `json:"defaultFunds"`
	SessionTTLHours  int      `json:"sessionTtlHours"`
	RequestTimeoutMS int      `json:"requestTimeoutMs"`
}

func defaultConfig() Config {
	return Config{
		Port:             8080,
		SessionTTLHours:  24,
		RequestTimeoutMS: 8000,
		DefaultFunds: []string{
			"0P0000XVFY.BO",
			"0P0000XW58.BO",
			"0P0001BA0F.BO",
		},
	}
}

// LoadConfig reads config.json next to the binary when present,
// otherwise runs on baked-in defaults. PORT env var wins over both.
func LoadConfig() (Config, error) {
	config := defaultConfig()
	if f, err := os.ReadFile("config.json"); err == nil {
		if err := json.Unmarshal(f, &config); err != nil {
			return Config{}, err
		}
	}
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err == nil {
			config.Port = port
		}
	}
	return config, nil
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

type PhonePe struct {
	MerchantID  string
	MerchantKey string
	KeyIndex    int
	BaseURL     string
	RedirectURL string
	SuccessURL  string
	FailureURL  string
}

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	StaticTokens []string
	CalendarID   string
	// CallTimeout bounds every outbound call; expiry surfaces as an
	// upstream-unavailable condition.
	CallTimeout time.Duration
	PhonePe     PhonePe
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if v := os.Getenv("OUTBOUND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, "parse OUTBOUND_TIMEOUT")
		}
		timeout = d
	}

	keyIndex := 1
	if v := os.Getenv("PHONEPE_KEY_INDEX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "parse PHONEPE_KEY_INDEX")
		}
		keyIndex = n
	}

	calendarID := os.Getenv("CALENDAR_ID")
	if calendarID == "" {
		calendarID = "primary"
	}

	var staticTokens []string
	for _, t := range strings.Split(os.Getenv("STATIC_TOKENS"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			staticTokens = append(staticTokens, t)
		}
	}

	cfg := &Config{
		Port:         os.Getenv("PORT"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_HMAC_SECRET")),
		StaticTokens: staticTokens,
		CalendarID:   calendarID,
		CallTimeout:  timeout,
		PhonePe: PhonePe{
			MerchantID:  os.Getenv("PHONEPE_MERCHANT_ID"),
			MerchantKey: os.Getenv("PHONEPE_MERCHANT_KEY"),
			KeyIndex:    keyIndex,
			BaseURL:     os.Getenv("PHONEPE_BASE_URL"),
			RedirectURL: os.Getenv("PHONEPE_REDIRECT_URL"),
			SuccessURL:  os.Getenv("PHONEPE_SUCCESS_URL"),
			FailureURL:  os.Getenv("PHONEPE_FAILURE_URL"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL required")
	}
	return cfg, nil
}

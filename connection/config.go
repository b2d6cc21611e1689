package connection

import (
	"fmt"
	"log"
	"os"
	"recaptchaguard/model"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env when running locally (RENDER is unset on local machines).
func LoadEnv() {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not loaded, fallback to OS env vars")
		}
	}
}

func LoadRecaptchaConfig() (*model.RecaptchaConfig, error) {
	LoadEnv()

	config := &model.RecaptchaConfig{
		ProjectID:          os.Getenv("RECAPTCHA_PROJECT_ID"),
		SiteKey:            os.Getenv("RECAPTCHA_SITE_KEY"),
		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		DSN:                os.Getenv("DB_DSN"),
		RetentionDays:      30,
	}

	var missing []string
	if config.ProjectID == "" {
		missing = append(missing, "RECAPTCHA_PROJECT_ID")
	}
	if config.SiteKey == "" {
		missing = append(missing, "RECAPTCHA_SITE_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if config.FirestoreProjectID == "" {
		config.FirestoreProjectID = config.ProjectID
	}

	if raw := os.Getenv("AUDIT_RETENTION_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("invalid AUDIT_RETENTION_DAYS %q", raw)
		}
		config.RetentionDays = days
	}

	return config, nil
}

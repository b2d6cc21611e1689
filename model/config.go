package model

type RecaptchaConfig struct {
	ProjectID          string
	SiteKey            string
	CredentialsFile    string
	FirestoreProjectID string
	DSN                string
	RetentionDays      int
}

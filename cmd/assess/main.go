// Command assess creates one reCAPTCHA Enterprise assessment and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"recaptchaguard/connection"
	"recaptchaguard/model"
	"recaptchaguard/services"
)

func main() {
	connection.LoadEnv()

	projectID := flag.String("project", os.Getenv("RECAPTCHA_PROJECT_ID"), "Google Cloud project id")
	siteKey := flag.String("key", os.Getenv("RECAPTCHA_SITE_KEY"), "reCAPTCHA key of the site/app")
	token := flag.String("token", "", "token generated on the client")
	action := flag.String("action", "", "action name the token should match")
	flag.Parse()

	config := &model.RecaptchaConfig{
		ProjectID:       *projectID,
		SiteKey:         *siteKey,
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	ctx := context.Background()
	client, err := connection.RecaptchaConnection(ctx, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create reCAPTCHA client: %v\n", err)
		os.Exit(1)
	}

	code := run(ctx, client, os.Stdout, os.Stderr, config, *token, *action)
	client.Close()
	os.Exit(code)
}

// run assesses token and returns the process exit code.
func run(ctx context.Context, client services.AssessmentClient, stdout, stderr io.Writer, config *model.RecaptchaConfig, token, action string) int {
	_, err := services.NewAssessor(client, stdout).Assess(ctx, config.ProjectID, config.SiteKey, token, action)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

package connection

import (
	"context"
	"fmt"
	"recaptchaguard/model"

	"cloud.google.com/go/firestore"
	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"google.golang.org/api/option"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func clientOptions(config *model.RecaptchaConfig) []option.ClientOption {
	if config.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(config.CredentialsFile)}
}

func DBConnection(config *model.RecaptchaConfig) (*gorm.DB, error) {
	if config.DSN == "" {
		return nil, fmt.Errorf("missing DB_DSN")
	}
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.ResponseData{}); err != nil {
		return nil, fmt.Errorf("migrate response table: %w", err)
	}
	return db, nil
}

func FBConnection(ctx context.Context, config *model.RecaptchaConfig) (*firestore.Client, error) {
	return firestore.NewClient(ctx, config.FirestoreProjectID, clientOptions(config)...)
}

func RecaptchaConnection(ctx context.Context, config *model.RecaptchaConfig) (*recaptcha.Client, error) {
	return recaptcha.NewClient(ctx, clientOptions(config)...)
}

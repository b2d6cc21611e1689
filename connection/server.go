package connection

import (
	"context"
	"log"
	"recaptchaguard/controller/captcha"
	"recaptchaguard/scheduler"
	"recaptchaguard/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	ctx := context.Background()

	config, err := LoadRecaptchaConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	DB, err := DBConnection(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	FB, err := FBConnection(ctx, config)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer FB.Close()
	RC, err := RecaptchaConnection(ctx, config)
	if err != nil {
		log.Fatalf("Failed to initialize reCAPTCHA client: %v", err)
	}
	defer RC.Close()

	svc := services.NewCaptchaService(config, RC, services.NewAuditStore(DB), services.NewFirestoreRecordStore(FB), log.Writer())

	jobs, err := scheduler.StartScheduler(svc)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	router := NewRouter(svc)
	if err := router.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

func NewRouter(svc *services.CaptchaService) *gin.Engine {
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	captcha.CaptchaController(router, svc)

	return router
}

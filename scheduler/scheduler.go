package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// PurgeSpec runs the purge every day at 03:00.
const PurgeSpec = "0 0 3 * * *"

type Purger interface {
	Purge(ctx context.Context) error
}

func StartScheduler(purger Purger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(PurgeSpec, func() {
		RunPurge(purger)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Println("Scheduler started")
	return c, nil
}

func RunPurge(purger Purger) {
	log.Println("Running scheduled captcha purge job...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := purger.Purge(ctx); err != nil {
		log.Printf("Captcha purge job failed: %v", err)
	}
}

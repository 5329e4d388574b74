package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logKeepAlive logs keep-alive events with timestamp
func logKeepAlive(message string) {
	log.Printf("[KEEP-ALIVE %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeKeepAliveScheduler pings the database on spec so idle pooled
// connections are not dropped by the server. The caller stops the returned cron.
func InitializeKeepAliveScheduler(spec string, ping func() error) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		if err := ping(); err != nil {
			logKeepAlive("Database ping failed: " + err.Error())
			return
		}
		logKeepAlive("Database ping ok")
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logKeepAlive("Scheduler started with spec " + spec)
	return c, nil
}

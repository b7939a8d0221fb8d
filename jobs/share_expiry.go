package jobs

import (
	"context"
	"log"
	"time"

	"casefile/services"
)

// ShareExpiryCleaner periodically purges view shares whose expiry has
// passed. An expired share already resolves as not-found; this reclaims the
// records.
type ShareExpiryCleaner struct {
	shareService *services.ShareService
	interval     time.Duration
	logger       *log.Logger
}

func NewShareExpiryCleaner(shareService *services.ShareService, interval time.Duration) *ShareExpiryCleaner {
	return &ShareExpiryCleaner{
		shareService: shareService,
		interval:     interval,
		logger:       log.New(log.Writer(), "[SHARE_EXPIRY] ", log.LstdFlags),
	}
}

// Start runs the cleanup loop. Call in a goroutine.
func (sc *ShareExpiryCleaner) Start() {
	sc.logger.Println("Starting share expiry cleaner...")

	// Run cleanup immediately on start
	sc.runCleanup()

	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for range ticker.C {
		sc.runCleanup()
	}
}

func (sc *ShareExpiryCleaner) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := sc.shareService.DeleteExpired(ctx, time.Now())
	if err != nil {
		sc.logger.Printf("Error cleaning up expired shares: %v", err)
		return
	}

	if deleted > 0 {
		sc.logger.Printf("Removed %d expired view shares", deleted)
	}
}

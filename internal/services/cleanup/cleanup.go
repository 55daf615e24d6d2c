package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Service sweeps orphaned upload spool files out of the temp directory.
// Uploads are removed by the transcribe handler on every exit path, but a
// crash mid-request can leave them behind.
type Service struct {
	tempDir       string
	maxAge        time.Duration
	sweepInterval time.Duration
	cancel        context.CancelFunc
}

// NewService creates a new cleanup service
func NewService(tempDir string, maxAge, sweepInterval time.Duration) *Service {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if sweepInterval <= 0 {
		sweepInterval = 15 * time.Minute
	}
	return &Service{
		tempDir:       tempDir,
		maxAge:        maxAge,
		sweepInterval: sweepInterval,
	}
}

// Start begins the periodic sweep
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Sweep once on startup to clear leftovers from a previous crash
	s.Sweep()

	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				log.Println("[INFO] Upload cleanup stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Upload cleanup started (interval: %v, max age: %v)", s.sweepInterval, s.maxAge)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Sweep removes spool files older than maxAge
func (s *Service) Sweep() {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[ERROR] Cleanup read error: %v", err)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "upload-") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		path := filepath.Join(s.tempDir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to remove spool file %s: %v", path, err)
		}
	}
}

package services

import (
	"context"
	"log"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"

	"github.com/robfig/cron/v3"
)

// BackupService periodically copies the live snapshot to a dated
// backup key. Write-through persistence is the primary durability
// mechanism; backups exist so a corrupt live blob can be recovered by
// an operator.
type BackupService struct {
	store *store.Store
	blob  store.BlobStore
	cfg   *config.Config
	cron  *cron.Cron
}

// NewBackupService creates a new backup service
func NewBackupService(st *store.Store, blob store.BlobStore, cfg *config.Config) *BackupService {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	return &BackupService{store: st, blob: blob, cfg: cfg, cron: c}
}

// Start registers the backup job and launches the scheduler
func (s *BackupService) Start() {
	if !s.cfg.Backup.Enabled {
		log.Println("⏭️ Snapshot backups disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.cfg.Backup.Cron, s.runBackup); err != nil {
		log.Printf("❌ Failed to register backup job: %v", err)
		return
	}

	s.cron.Start()
	log.Printf("🚀 Snapshot backup scheduled [%s]", s.cfg.Backup.Cron)
}

// Stop stops the scheduler and waits for a running job to finish
func (s *BackupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Snapshot backup scheduler stopped")
}

// runBackup writes the current snapshot under a dated key
func (s *BackupService) runBackup() {
	data, err := s.store.Export()
	if err != nil {
		log.Printf("❌ Backup: failed to export state: %v", err)
		return
	}

	key := store.StateKey + ".backup." + time.Now().UTC().Format("20060102")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.blob.Put(ctx, key, data); err != nil {
		log.Printf("❌ Backup: failed to write %s: %v", key, err)
		return
	}
	log.Printf("💾 Snapshot backed up to %s", key)
}

package cron

import (
	"context"
	"time"

	"app/internal/repository"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// purgeBlocklistはretentionより古い台帳行を削除する。
// その行のトークンは自然期限も切れているので、消しても再admitされない。
func purgeBlocklist(blocklist repository.RevokedTokenRepository, retention time.Duration, log *logrus.Logger) {
	cutoff := time.Now().Add(-retention)

	deleted, err := blocklist.DeleteCreatedBefore(context.Background(), cutoff)
	if err != nil {
		log.WithError(err).Error("failed to purge token blocklist")
		return
	}

	log.WithField("deleted", deleted).Info("purged expired blocklist entries")
}

// StartBlocklistCleanupは失効台帳の日次パージをスケジュールする。
func StartBlocklistCleanup(blocklist repository.RevokedTokenRepository, retention time.Duration, log *logrus.Logger) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)

	_, err := s.Every(1).Day().Do(func() {
		purgeBlocklist(blocklist, retention, log)
	})
	if err != nil {
		log.WithError(err).Error("failed to schedule blocklist cleanup")
	}

	s.StartAsync()
	return s
}

package cron

import (
	"context"

	"github.com/mileusna/crontab"

	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

type CronService struct {
	cache *sprite.VariantCacheService
}

func NewService(cache *sprite.VariantCacheService) *CronService {
	return &CronService{
		cache: cache,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.sweepCache()

	ctab.AddJob("*/5 * * * *", func() {
		cs.sweepCache()
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

// sweepCache drops cached variants whose backing image was deleted from
// disk, so later lookups go straight to generation instead of re-checking a
// stale entry.
func (cs *CronService) sweepCache() {
	if cs.cache == nil {
		return
	}
	if pruned := cs.cache.Sweep(); pruned > 0 {
		logger.GetLogger().Infof("cron: pruned %d stale variant cache entries", pruned)
	}
}

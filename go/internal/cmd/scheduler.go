package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// setupScheduler registers the weekly roster rollover: for every active
// league, materialize next week's roster as a copy of the current week, then
// advance the league's current week. Transaction processors never run this;
// they only mutate already-materialized weeks.
func setupScheduler(cfg *Config, services *Services) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cfg.Scheduler.RolloverSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		rolloverLeagues(ctx, services)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func rolloverLeagues(ctx context.Context, services *Services) {
	lids, err := services.Leagues.ListActiveLeagueIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("rollover: failed to list active leagues")
		return
	}

	for _, lid := range lids {
		cfg, err := services.Leagues.GetLeague(ctx, lid)
		if err != nil {
			log.Error().Err(err).Str("league_id", lid.String()).Msg("rollover: failed to get league")
			continue
		}

		copied, err := services.Rosters.CopyForward(ctx, lid, cfg.CurrentYear, cfg.CurrentWeek, cfg.CurrentWeek+1)
		if err != nil {
			log.Error().Err(err).Str("league_id", lid.String()).Msg("rollover: copy-forward failed")
			continue
		}
		if err := services.Leagues.AdvanceWeek(ctx, lid); err != nil {
			log.Error().Err(err).Str("league_id", lid.String()).Msg("rollover: failed to advance week")
			continue
		}

		log.Info().
			Str("league_id", lid.String()).
			Int("week", cfg.CurrentWeek+1).
			Int("rows_copied", copied).
			Msg("rolled league forward")
	}
}

package rules

import (
	"time"

	"github.com/mcdev12/gridiron/go/internal/models"
)

// IsSanctuaryPeriod reports whether now falls inside the league's
// no-transaction window. Leagues without a configured window never enter
// sanctuary.
func IsSanctuaryPeriod(cfg *models.LeagueConfig, now time.Time) bool {
	if cfg.SanctuaryStart == nil || cfg.SanctuaryEnd == nil {
		return false
	}
	return !now.Before(*cfg.SanctuaryStart) && now.Before(*cfg.SanctuaryEnd)
}

package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Compensation picks land in round 3 of the following year's draft.
const compPickRound = 3

// awardConditionalPick compensates a team that lost a player to a poach or
// restricted free agency. Runs after the primary write; a failure is logged
// and never unwinds the roster mutation.
func (a *App) awardConditionalPick(ctx context.Context, lid, toTID, fromTID uuid.UUID, season models.SeasonContext) {
	pick := models.ConditionalPick{
		ID:             uuid.New(),
		TeamID:         toTID,
		LeagueID:       lid,
		OriginalTeamID: fromTID,
		Round:          compPickRound,
		Year:           season.Year + 1,
		Comp:           true,
	}
	if err := a.stores.Picks.InsertConditionalPick(ctx, pick); err != nil {
		log.Error().Err(err).
			Str("league_id", lid.String()).
			Str("team_id", toTID.String()).
			Msg("failed to award conditional pick")
	}
}

package roster

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// Roster is an in-memory projection of one team's roster for a single week,
// built from persisted snapshot rows. Mutations touch only the projection;
// callers persist deltas explicitly through the repository. The projection
// performs no I/O.
type Roster struct {
	LeagueID uuid.UUID
	TeamID   uuid.UUID
	Year     int
	Week     int

	cap            int
	capPenalty     int
	benchLimit     int
	psLimit        int
	irShortLimit   int
	covLimit       int
	positionLimits map[models.Position]int

	players map[uuid.UUID]models.RosterRow
	order   []uuid.UUID
}

// Build constructs a projection from league rules, the owning team, and the
// snapshot rows for (team, year, week). Each player may appear at most once.
func Build(cfg *models.LeagueConfig, team *models.Team, rows []models.RosterRow, year, week int) (*Roster, error) {
	r := &Roster{
		LeagueID:       cfg.ID,
		TeamID:         team.ID,
		Year:           year,
		Week:           week,
		cap:            cfg.Cap,
		capPenalty:     team.CapPenalty,
		benchLimit:     cfg.BenchLimit,
		psLimit:        cfg.PracticeSquadLimit,
		irShortLimit:   cfg.ReserveShortTermLimit,
		covLimit:       cfg.ReserveCOVLimit,
		positionLimits: cfg.PositionLimits,
		players:        make(map[uuid.UUID]models.RosterRow, len(rows)),
	}
	for _, row := range rows {
		if _, ok := r.players[row.PlayerID]; ok {
			return nil, fmt.Errorf("player %s appears twice in roster week %d/%d", row.PlayerID, year, week)
		}
		r.players[row.PlayerID] = row
		r.order = append(r.order, row.PlayerID)
	}
	return r, nil
}

// Has reports whether the player is on the roster.
func (r *Roster) Has(pid uuid.UUID) bool {
	_, ok := r.players[pid]
	return ok
}

// Get returns the player's roster row.
func (r *Roster) Get(pid uuid.UUID) (models.RosterRow, bool) {
	row, ok := r.players[pid]
	return row, ok
}

// All returns every roster row in insertion order.
func (r *Roster) All() []models.RosterRow {
	return r.filter(func(models.RosterRow) bool { return true })
}

// Active returns the active roster (starters plus bench).
func (r *Roster) Active() []models.RosterRow {
	return r.filter(func(row models.RosterRow) bool { return row.Slot.IsActiveRoster() })
}

// Starters returns players in a starting slot.
func (r *Roster) Starters() []models.RosterRow {
	return r.filter(func(row models.RosterRow) bool { return row.Slot == models.SlotActive })
}

// Practice returns players in any practice squad slot.
func (r *Roster) Practice() []models.RosterRow {
	return r.filter(func(row models.RosterRow) bool { return row.Slot.IsPracticeSquad() })
}

// Reserve returns players in any reserve slot.
func (r *Roster) Reserve() []models.RosterRow {
	return r.filter(func(row models.RosterRow) bool { return row.Slot.IsReserve() })
}

func (r *Roster) filter(keep func(models.RosterRow) bool) []models.RosterRow {
	var out []models.RosterRow
	for _, pid := range r.order {
		if row, ok := r.players[pid]; ok && keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// AvailableCap returns the league cap minus the sum of active-roster player
// values minus any team cap penalty.
func (r *Roster) AvailableCap() int {
	used := r.capPenalty
	for _, row := range r.Active() {
		used += row.Value
	}
	return r.cap - used
}

// AvailableSpace returns the number of open active-roster slots.
func (r *Roster) AvailableSpace() int {
	return r.benchLimit - len(r.Active())
}

// IsEligibleForSlot reports whether a player at the given position can be
// placed in the slot without exceeding the league's position-count limit for
// that slot category. Open-slot counts are checked separately.
func (r *Roster) IsEligibleForSlot(slot models.Slot, pos models.Position) bool {
	if !slot.IsActiveRoster() {
		return true
	}
	limit, ok := r.positionLimits[pos]
	if !ok || limit == 0 {
		return true
	}
	count := 0
	for _, row := range r.Active() {
		if row.Position == pos {
			count++
		}
	}
	return count < limit
}

// HasOpenPracticeSquadSlot reports whether a practice squad slot is open.
func (r *Roster) HasOpenPracticeSquadSlot() bool {
	return len(r.Practice()) < r.psLimit
}

// HasOpenReserveShortTermSlot reports whether a short-term IR slot is open.
func (r *Roster) HasOpenReserveShortTermSlot() bool {
	count := 0
	for _, row := range r.Reserve() {
		if row.Slot == models.SlotIR {
			count++
		}
	}
	return count < r.irShortLimit
}

// HasOpenReserveCOVSlot reports whether a COVID reserve slot is open.
func (r *Roster) HasOpenReserveCOVSlot() bool {
	count := 0
	for _, row := range r.Reserve() {
		if row.Slot == models.SlotReserveCOV {
			count++
		}
	}
	return count < r.covLimit
}

// AddPlayer places a player on the in-memory projection.
func (r *Roster) AddPlayer(row models.RosterRow) error {
	if r.Has(row.PlayerID) {
		return fmt.Errorf("player %s already on roster", row.PlayerID)
	}
	r.players[row.PlayerID] = row
	r.order = append(r.order, row.PlayerID)
	return nil
}

// RemovePlayer drops a player from the in-memory projection.
func (r *Roster) RemovePlayer(pid uuid.UUID) {
	delete(r.players, pid)
	for i, id := range r.order {
		if id == pid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// UpdateSlot moves a player to a new slot on the in-memory projection.
func (r *Roster) UpdateSlot(pid uuid.UUID, slot models.Slot) error {
	row, ok := r.players[pid]
	if !ok {
		return fmt.Errorf("player %s not on roster", pid)
	}
	row.Slot = slot
	r.players[pid] = row
	return nil
}

// Copy returns an independent working copy of the projection.
func (r *Roster) Copy() *Roster {
	cp := *r
	cp.players = make(map[uuid.UUID]models.RosterRow, len(r.players))
	for pid, row := range r.players {
		cp.players[pid] = row
	}
	cp.order = append([]uuid.UUID(nil), r.order...)
	return &cp
}

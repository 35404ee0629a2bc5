package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/notify"
	"github.com/mcdev12/gridiron/go/internal/players"
	"github.com/mcdev12/gridiron/go/internal/roster"
	"github.com/mcdev12/gridiron/go/internal/rules"
	"github.com/rs/zerolog/log"
)

// LeagueConfigRepository defines what the engine needs from league config.
type LeagueConfigRepository interface {
	GetLeague(ctx context.Context, lid uuid.UUID) (*models.LeagueConfig, error)
}

// TeamRepository defines what the engine needs from the team directory.
type TeamRepository interface {
	GetTeam(ctx context.Context, tid uuid.UUID) (*models.Team, error)
}

// PlayerRepository defines what the engine needs from the player directory.
type PlayerRepository interface {
	GetPlayer(ctx context.Context, pid uuid.UUID) (*models.Player, error)
}

// ScheduleRepository defines what the engine needs from the schedule and
// game-status provider.
type ScheduleRepository interface {
	KickoffTime(ctx context.Context, nflTeam string, year, week int) (*time.Time, error)
	PriorWeekStatus(ctx context.Context, pid uuid.UUID, year, week int) (*models.GameStatus, error)
	PracticeReports(ctx context.Context, pid uuid.UUID, year, week int) ([]models.PracticeReport, error)
}

// RosterStore is the roster snapshot access a processor needs.
type RosterStore interface {
	GetRosterRows(ctx context.Context, tid uuid.UUID, year, week int) ([]models.RosterRow, error)
	FindRowByPlayer(ctx context.Context, lid, pid uuid.UUID, year, week int) (*models.RosterRow, error)
	InsertRosterRow(ctx context.Context, row models.RosterRow) error
	DeletePlayerFromWeek(ctx context.Context, tid, pid uuid.UUID, year, fromWeek int) error
	UpdateSlotFromWeek(ctx context.Context, tid, pid uuid.UUID, year, fromWeek int, slot models.Slot) error
	UpdateValueFromWeek(ctx context.Context, tid, pid uuid.UUID, year, fromWeek, value int) error
	PlayerRosterWeeks(ctx context.Context, lid, pid uuid.UUID) ([]models.PlayerRosterWeek, error)
	MaterializedWeeks(ctx context.Context, lid uuid.UUID, year, fromWeek int) ([]int, error)
	GetCutlist(ctx context.Context, tid uuid.UUID) ([]uuid.UUID, error)
	RemoveFromCutlist(ctx context.Context, tid, pid uuid.UUID) error
}

// LedgerStore is the append-only transaction ledger access.
type LedgerStore interface {
	Append(ctx context.Context, tx models.Transaction) error
	ListByPlayer(ctx context.Context, lid, pid uuid.UUID) ([]models.Transaction, error)
	LastByPlayer(ctx context.Context, lid, pid uuid.UUID) (*models.Transaction, error)
}

// WaiverStore is the waiver table access.
type WaiverStore interface {
	Insert(ctx context.Context, w models.Waiver) error
	PendingByPlayer(ctx context.Context, lid, pid uuid.UUID) ([]models.Waiver, error)
	PendingByTeamAndPlayer(ctx context.Context, tid, pid uuid.UUID) ([]models.Waiver, error)
	MarkProcessed(ctx context.Context, uid uuid.UUID) error
}

// PoachStore is the poach claim table access.
type PoachStore interface {
	Insert(ctx context.Context, claim models.PoachClaim) error
	PendingByPlayer(ctx context.Context, lid, pid uuid.UUID) ([]models.PoachClaim, error)
	PendingByClaimingTeam(ctx context.Context, lid, tid uuid.UUID) ([]models.PoachClaim, error)
	MarkProcessed(ctx context.Context, uid uuid.UUID, succeeded bool) error
	CancelPendingByPlayer(ctx context.Context, lid, pid uuid.UUID) error
}

// SuperPriorityStore is the super-priority record access.
type SuperPriorityStore interface {
	Insert(ctx context.Context, sp models.SuperPriority) error
	Get(ctx context.Context, uid uuid.UUID) (*models.SuperPriority, error)
	FindUnclaimed(ctx context.Context, lid, pid uuid.UUID) (*models.SuperPriority, error)
	UpdateEligibility(ctx context.Context, uid uuid.UUID, eligible bool) error
	MarkClaimed(ctx context.Context, uid uuid.UUID) (bool, error)
}

// PickStore is the conditional draft pick access.
type PickStore interface {
	InsertConditionalPick(ctx context.Context, pick models.ConditionalPick) error
}

// Stores bundles every table the engine writes, so an apply phase can run
// against a single database transaction.
type Stores struct {
	Roster        RosterStore
	Ledger        LedgerStore
	Waivers       WaiverStore
	Poaches       PoachStore
	SuperPriority SuperPriorityStore
	Picks         PickStore
}

// TxRunner executes fn with stores bound to one database transaction. If fn
// returns an error nothing is persisted.
type TxRunner interface {
	InTx(ctx context.Context, fn func(s Stores) error) error
}

// Notifier delivers league notifications. Delivery is fire-and-forget; the
// engine logs failures and moves on.
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// App is the transaction engine. Every processor runs validate -> apply ->
// compensate/notify under the league's lock; validation failures surface as
// *RuleViolation with zero writes, and compensation failures never unwind
// the primary write.
type App struct {
	config   LeagueConfigRepository
	teams    TeamRepository
	players  PlayerRepository
	schedule ScheduleRepository
	stores   Stores
	tx       TxRunner
	notifier Notifier
	clock    clockwork.Clock
	locks    *leagueLocks
}

// Deps collects the engine's collaborators.
type Deps struct {
	Config   LeagueConfigRepository
	Teams    TeamRepository
	Players  PlayerRepository
	Schedule ScheduleRepository
	Stores   Stores
	Tx       TxRunner
	Notifier Notifier
	Clock    clockwork.Clock
}

// NewApp creates the transaction engine.
func NewApp(deps Deps) *App {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		config:   deps.Config,
		teams:    deps.Teams,
		players:  deps.Players,
		schedule: deps.Schedule,
		stores:   deps.Stores,
		tx:       deps.Tx,
		notifier: deps.Notifier,
		clock:    clock,
		locks:    newLeagueLocks(),
	}
}

// RosterDelta describes one roster change produced by a processor. Slot is
// nil when the player left the roster.
type RosterDelta struct {
	PlayerID    uuid.UUID          `json:"player_id"`
	TeamID      uuid.UUID          `json:"team_id"`
	Slot        *models.Slot       `json:"slot,omitempty"`
	Transaction models.Transaction `json:"transaction"`
}

func seasonContext(cfg *models.LeagueConfig, now time.Time) models.SeasonContext {
	return models.SeasonContext{
		Year:            cfg.CurrentYear,
		Week:            cfg.CurrentWeek,
		Now:             now,
		IsRegularSeason: cfg.IsRegularSeason,
		IsOffseason:     cfg.IsOffseason,
	}
}

// loadRoster builds the projection for one team-week.
func (a *App) loadRoster(ctx context.Context, cfg *models.LeagueConfig, team *models.Team, year, week int) (*roster.Roster, error) {
	rows, err := a.stores.Roster.GetRosterRows(ctx, team.ID, year, week)
	if err != nil {
		return nil, err
	}
	return roster.Build(cfg, team, rows, year, week)
}

// loadLeagueTeamRoster resolves the league config, team, season context, and
// roster projection a processor validates against. A missing roster week
// surfaces as a NotOnRoster violation rather than an internal error.
func (a *App) loadLeagueTeamRoster(ctx context.Context, lid, tid uuid.UUID) (*models.LeagueConfig, *models.Team, models.SeasonContext, *roster.Roster, error) {
	cfg, err := a.config.GetLeague(ctx, lid)
	if err != nil {
		return nil, nil, models.SeasonContext{}, nil, fmt.Errorf("failed to get league config: %w", err)
	}
	team, err := a.teams.GetTeam(ctx, tid)
	if err != nil {
		return nil, nil, models.SeasonContext{}, nil, fmt.Errorf("failed to get team: %w", err)
	}
	season := seasonContext(cfg, a.clock.Now())
	ros, err := a.loadRoster(ctx, cfg, team, season.Year, season.Week)
	if roster.IsNotFound(err) {
		return nil, nil, models.SeasonContext{}, nil,
			violation(ViolationNotOnRoster, "team %s has no roster for week %d of %d", tid, season.Week, season.Year)
	}
	if err != nil {
		return nil, nil, models.SeasonContext{}, nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return cfg, team, season, ros, nil
}

// getPlayer resolves a directory entry, mapping an unknown ID to an
// InvalidPlayer violation.
func (a *App) getPlayer(ctx context.Context, pid uuid.UUID) (*models.Player, error) {
	player, err := a.players.GetPlayer(ctx, pid)
	if errors.Is(err, players.ErrUnknownPlayer) {
		return nil, violation(ViolationInvalidPlayer, "player %s does not exist", pid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// isLockedStarter reports whether the player is a named starter whose game
// has kicked off for the current week.
func (a *App) isLockedStarter(ctx context.Context, player *models.Player, row models.RosterRow, season models.SeasonContext) (bool, error) {
	if row.Slot != models.SlotActive {
		return false, nil
	}
	kickoff, err := a.schedule.KickoffTime(ctx, player.NFLTeam, season.Year, season.Week)
	if err != nil {
		return false, fmt.Errorf("failed to get kickoff time: %w", err)
	}
	return rules.IsLockedStarter(row.Slot, kickoff, season.Now), nil
}

// notifyBestEffort dispatches a notification, logging and swallowing any
// failure.
func (a *App) notifyBestEffort(ctx context.Context, lid uuid.UUID, tid *uuid.UUID, event, text string) {
	if a.notifier == nil {
		return
	}
	msg := notify.Message{
		ID:       uuid.New(),
		LeagueID: lid,
		TeamID:   tid,
		Event:    event,
		Text:     text,
	}
	if err := a.notifier.Notify(ctx, msg); err != nil {
		log.Error().Err(err).
			Str("league_id", lid.String()).
			Str("event", event).
			Msg("failed to dispatch notification")
	}
}

// newTransaction builds a ledger entry stamped with the engine clock.
func (a *App) newTransaction(txType models.TransactionType, season models.SeasonContext, lid, tid, pid uuid.UUID, value int, userID *uuid.UUID) models.Transaction {
	return models.Transaction{
		UID:       uuid.New(),
		Type:      txType,
		PlayerID:  pid,
		TeamID:    tid,
		LeagueID:  lid,
		Week:      season.Week,
		Year:      season.Year,
		Value:     value,
		UserID:    userID,
		Timestamp: a.clock.Now(),
	}
}

func slotPtr(s models.Slot) *models.Slot {
	return &s
}

// insertAcquiredRows writes the acquired player's snapshot row for the
// current week and every already-materialized later week, mirroring the
// from-week-forward delete on the release side. Runs inside the processor's
// database transaction.
func insertAcquiredRows(ctx context.Context, s Stores, row models.RosterRow) error {
	weeks, err := s.Roster.MaterializedWeeks(ctx, row.LeagueID, row.Year, row.Week)
	if err != nil {
		return err
	}
	current := false
	for _, w := range weeks {
		if w == row.Week {
			current = true
			break
		}
	}
	if !current {
		weeks = append([]int{row.Week}, weeks...)
	}
	for _, w := range weeks {
		r := row
		r.ID = uuid.New()
		r.Week = w
		if err := s.Roster.InsertRosterRow(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

package engine

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/notify"
	"github.com/mcdev12/gridiron/go/internal/players"
	"github.com/mcdev12/gridiron/go/internal/roster"
)

// fakeStores is an in-memory stand-in for every table the engine touches.
// The roster and ledger methods live on the struct itself; the waiver,
// poach, and super-priority interfaces share method names, so each gets a
// thin wrapper over the same data.
type fakeStores struct {
	rosters  []models.RosterRow
	ledger   []models.Transaction
	waivers  []models.Waiver
	poaches  []models.PoachClaim
	sps      map[uuid.UUID]models.SuperPriority
	picks    []models.ConditionalPick
	cutlists map[uuid.UUID][]uuid.UUID
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		sps:      make(map[uuid.UUID]models.SuperPriority),
		cutlists: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeStores) stores() Stores {
	return Stores{
		Roster:        f,
		Ledger:        f,
		Waivers:       fakeWaiverStore{f},
		Poaches:       fakePoachStore{f},
		SuperPriority: fakeSPStore{f},
		Picks:         f,
	}
}

func (f *fakeStores) GetRosterRows(_ context.Context, tid uuid.UUID, year, week int) ([]models.RosterRow, error) {
	var out []models.RosterRow
	for _, r := range f.rosters {
		if r.TeamID == tid && r.Year == year && r.Week == week {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, roster.ErrNotFound
	}
	return out, nil
}

func (f *fakeStores) FindRowByPlayer(_ context.Context, lid, pid uuid.UUID, year, week int) (*models.RosterRow, error) {
	for i := range f.rosters {
		r := f.rosters[i]
		if r.LeagueID == lid && r.PlayerID == pid && r.Year == year && r.Week == week {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStores) InsertRosterRow(_ context.Context, row models.RosterRow) error {
	f.rosters = append(f.rosters, row)
	return nil
}

func (f *fakeStores) DeletePlayerFromWeek(_ context.Context, tid, pid uuid.UUID, year, fromWeek int) error {
	var kept []models.RosterRow
	for _, r := range f.rosters {
		if r.TeamID == tid && r.PlayerID == pid && r.Year == year && r.Week >= fromWeek {
			continue
		}
		kept = append(kept, r)
	}
	f.rosters = kept
	return nil
}

func (f *fakeStores) UpdateSlotFromWeek(_ context.Context, tid, pid uuid.UUID, year, fromWeek int, slot models.Slot) error {
	for i := range f.rosters {
		r := &f.rosters[i]
		if r.TeamID == tid && r.PlayerID == pid && r.Year == year && r.Week >= fromWeek {
			r.Slot = slot
		}
	}
	return nil
}

func (f *fakeStores) UpdateValueFromWeek(_ context.Context, tid, pid uuid.UUID, year, fromWeek, value int) error {
	for i := range f.rosters {
		r := &f.rosters[i]
		if r.TeamID == tid && r.PlayerID == pid && r.Year == year && r.Week >= fromWeek {
			r.Value = value
		}
	}
	return nil
}

func (f *fakeStores) PlayerRosterWeeks(_ context.Context, lid, pid uuid.UUID) ([]models.PlayerRosterWeek, error) {
	var out []models.PlayerRosterWeek
	for _, r := range f.rosters {
		if r.LeagueID == lid && r.PlayerID == pid {
			out = append(out, models.PlayerRosterWeek{TeamID: r.TeamID, Year: r.Year, Week: r.Week, Slot: r.Slot})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out, nil
}

func (f *fakeStores) MaterializedWeeks(_ context.Context, lid uuid.UUID, year, fromWeek int) ([]int, error) {
	seen := make(map[int]bool)
	for _, r := range f.rosters {
		if r.LeagueID == lid && r.Year == year && r.Week >= fromWeek {
			seen[r.Week] = true
		}
	}
	var weeks []int
	for w := range seen {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks, nil
}

func (f *fakeStores) GetCutlist(_ context.Context, tid uuid.UUID) ([]uuid.UUID, error) {
	return f.cutlists[tid], nil
}

func (f *fakeStores) RemoveFromCutlist(_ context.Context, tid, pid uuid.UUID) error {
	var kept []uuid.UUID
	for _, p := range f.cutlists[tid] {
		if p != pid {
			kept = append(kept, p)
		}
	}
	f.cutlists[tid] = kept
	return nil
}

func (f *fakeStores) Append(_ context.Context, tx models.Transaction) error {
	f.ledger = append(f.ledger, tx)
	return nil
}

func (f *fakeStores) ListByPlayer(_ context.Context, lid, pid uuid.UUID) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.ledger {
		if tx.LeagueID == lid && tx.PlayerID == pid {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].UID.String() > out[j].UID.String()
	})
	return out, nil
}

func (f *fakeStores) LastByPlayer(ctx context.Context, lid, pid uuid.UUID) (*models.Transaction, error) {
	txs, err := f.ListByPlayer(ctx, lid, pid)
	if err != nil || len(txs) == 0 {
		return nil, err
	}
	return &txs[0], nil
}

func (f *fakeStores) InsertConditionalPick(_ context.Context, pick models.ConditionalPick) error {
	f.picks = append(f.picks, pick)
	return nil
}

type fakeWaiverStore struct {
	f *fakeStores
}

func (w fakeWaiverStore) Insert(_ context.Context, wv models.Waiver) error {
	w.f.waivers = append(w.f.waivers, wv)
	return nil
}

func (w fakeWaiverStore) PendingByPlayer(_ context.Context, lid, pid uuid.UUID) ([]models.Waiver, error) {
	var out []models.Waiver
	for _, wv := range w.f.waivers {
		if wv.LeagueID == lid && wv.PlayerID == pid && wv.Pending() {
			out = append(out, wv)
		}
	}
	return out, nil
}

func (w fakeWaiverStore) PendingByTeamAndPlayer(_ context.Context, tid, pid uuid.UUID) ([]models.Waiver, error) {
	var out []models.Waiver
	for _, wv := range w.f.waivers {
		if wv.TeamID == tid && wv.PlayerID == pid && wv.Pending() {
			out = append(out, wv)
		}
	}
	return out, nil
}

func (w fakeWaiverStore) MarkProcessed(_ context.Context, uid uuid.UUID) error {
	now := time.Now()
	for i := range w.f.waivers {
		if w.f.waivers[i].UID == uid && w.f.waivers[i].Pending() {
			w.f.waivers[i].Processed = &now
		}
	}
	return nil
}

type fakePoachStore struct {
	f *fakeStores
}

func (p fakePoachStore) Insert(_ context.Context, claim models.PoachClaim) error {
	p.f.poaches = append(p.f.poaches, claim)
	return nil
}

func (p fakePoachStore) PendingByPlayer(_ context.Context, lid, pid uuid.UUID) ([]models.PoachClaim, error) {
	var out []models.PoachClaim
	for _, c := range p.f.poaches {
		if c.LeagueID == lid && c.PlayerID == pid && c.Pending() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p fakePoachStore) PendingByClaimingTeam(_ context.Context, lid, tid uuid.UUID) ([]models.PoachClaim, error) {
	var out []models.PoachClaim
	for _, c := range p.f.poaches {
		if c.LeagueID == lid && c.TeamID == tid && c.Pending() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p fakePoachStore) MarkProcessed(_ context.Context, uid uuid.UUID, succeeded bool) error {
	now := time.Now()
	for i := range p.f.poaches {
		if p.f.poaches[i].UID == uid && p.f.poaches[i].Pending() {
			p.f.poaches[i].Processed = &now
			p.f.poaches[i].Succeeded = &succeeded
		}
	}
	return nil
}

func (p fakePoachStore) CancelPendingByPlayer(_ context.Context, lid, pid uuid.UUID) error {
	now := time.Now()
	no := false
	for i := range p.f.poaches {
		if p.f.poaches[i].LeagueID == lid && p.f.poaches[i].PlayerID == pid && p.f.poaches[i].Pending() {
			p.f.poaches[i].Processed = &now
			p.f.poaches[i].Succeeded = &no
		}
	}
	return nil
}

type fakeSPStore struct {
	f *fakeStores
}

func (s fakeSPStore) Insert(_ context.Context, sp models.SuperPriority) error {
	s.f.sps[sp.UID] = sp
	return nil
}

func (s fakeSPStore) Get(_ context.Context, uid uuid.UUID) (*models.SuperPriority, error) {
	sp, ok := s.f.sps[uid]
	if !ok {
		return nil, roster.ErrNotFound
	}
	return &sp, nil
}

func (s fakeSPStore) FindUnclaimed(_ context.Context, lid, pid uuid.UUID) (*models.SuperPriority, error) {
	for _, sp := range s.f.sps {
		if sp.LeagueID == lid && sp.PlayerID == pid && !sp.Claimed {
			out := sp
			return &out, nil
		}
	}
	return nil, nil
}

func (s fakeSPStore) UpdateEligibility(_ context.Context, uid uuid.UUID, eligible bool) error {
	if sp, ok := s.f.sps[uid]; ok && !sp.Claimed {
		sp.Eligible = eligible
		s.f.sps[uid] = sp
	}
	return nil
}

func (s fakeSPStore) MarkClaimed(_ context.Context, uid uuid.UUID) (bool, error) {
	sp, ok := s.f.sps[uid]
	if !ok || sp.Claimed {
		return false, nil
	}
	sp.Claimed = true
	s.f.sps[uid] = sp
	return true, nil
}

// fakeTx hands the apply phase the same in-memory stores. Rollback is not
// simulated; these tests only exercise paths where the apply succeeds or
// fails validation before any write.
type fakeTx struct {
	f *fakeStores
}

func (t fakeTx) InTx(_ context.Context, fn func(s Stores) error) error {
	return fn(t.f.stores())
}

type fakeConfigRepo struct {
	cfg *models.LeagueConfig
}

func (r fakeConfigRepo) GetLeague(_ context.Context, _ uuid.UUID) (*models.LeagueConfig, error) {
	out := *r.cfg
	return &out, nil
}

type fakeTeamRepo struct {
	teams map[uuid.UUID]models.Team
}

func (r fakeTeamRepo) GetTeam(_ context.Context, tid uuid.UUID) (*models.Team, error) {
	team := r.teams[tid]
	return &team, nil
}

type fakePlayerRepo struct {
	players map[uuid.UUID]models.Player
}

func (r fakePlayerRepo) GetPlayer(_ context.Context, pid uuid.UUID) (*models.Player, error) {
	p, ok := r.players[pid]
	if !ok {
		return nil, players.ErrUnknownPlayer
	}
	return &p, nil
}

type fakeScheduleRepo struct {
	kickoffs map[string]time.Time
	statuses map[uuid.UUID]models.GameStatus
	reports  map[uuid.UUID][]models.PracticeReport
}

func (r *fakeScheduleRepo) KickoffTime(_ context.Context, nflTeam string, _, _ int) (*time.Time, error) {
	if k, ok := r.kickoffs[nflTeam]; ok {
		return &k, nil
	}
	return nil, nil
}

func (r *fakeScheduleRepo) PriorWeekStatus(_ context.Context, pid uuid.UUID, _, _ int) (*models.GameStatus, error) {
	if s, ok := r.statuses[pid]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeScheduleRepo) PracticeReports(_ context.Context, pid uuid.UUID, _, _ int) ([]models.PracticeReport, error) {
	return r.reports[pid], nil
}

type fakeNotifier struct {
	messages []notify.Message
}

func (n *fakeNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.messages = append(n.messages, msg)
	return nil
}

// harness bundles an engine wired to fakes plus the handles tests assert on.
type harness struct {
	app      *App
	stores   *fakeStores
	cfg      *models.LeagueConfig
	teams    map[uuid.UUID]models.Team
	players  map[uuid.UUID]models.Player
	schedule *fakeScheduleRepo
	notifier *fakeNotifier
	clock    *clockwork.FakeClock
	now      time.Time
}

func newHarness() *harness {
	now := time.Date(2025, 10, 1, 15, 0, 0, 0, time.UTC)
	cfg := &models.LeagueConfig{
		ID:                    uuid.New(),
		Name:                  "test league",
		Cap:                   200,
		BenchLimit:            3,
		PracticeSquadLimit:    2,
		ReserveShortTermLimit: 1,
		ReserveCOVLimit:       1,
		PositionLimits:        map[models.Position]int{models.PositionWR: 2},
		CurrentYear:           2025,
		CurrentWeek:           3,
		IsRegularSeason:       true,
		ProcessingHour:        10,
	}

	h := &harness{
		stores:  newFakeStores(),
		cfg:     cfg,
		teams:   make(map[uuid.UUID]models.Team),
		players: make(map[uuid.UUID]models.Player),
		schedule: &fakeScheduleRepo{
			kickoffs: map[string]time.Time{},
			statuses: map[uuid.UUID]models.GameStatus{},
			reports:  map[uuid.UUID][]models.PracticeReport{},
		},
		notifier: &fakeNotifier{},
		clock:    clockwork.NewFakeClockAt(now),
		now:      now,
	}

	h.app = NewApp(Deps{
		Config:   fakeConfigRepo{cfg: cfg},
		Teams:    fakeTeamRepo{teams: h.teams},
		Players:  fakePlayerRepo{players: h.players},
		Schedule: h.schedule,
		Stores:   h.stores.stores(),
		Tx:       fakeTx{f: h.stores},
		Notifier: h.notifier,
		Clock:    h.clock,
	})
	return h
}

func (h *harness) addTeam(name string, waiverOrder int) uuid.UUID {
	tid := uuid.New()
	h.teams[tid] = models.Team{ID: tid, LeagueID: h.cfg.ID, Name: name, WaiverOrder: waiverOrder}
	return tid
}

func (h *harness) addPlayer(name string, pos models.Position) uuid.UUID {
	pid := uuid.New()
	h.players[pid] = models.Player{
		ID:           pid,
		FullName:     name,
		Position:     pos,
		NFLTeam:      "KC",
		RosterStatus: models.NFLStatusActive,
	}
	return pid
}

// addRosterRow places the player on the team for the given weeks (current
// week when none given) so release propagation can be observed.
func (h *harness) addRosterRow(tid, pid uuid.UUID, slot models.Slot, value int, weeks ...int) {
	if len(weeks) == 0 {
		weeks = []int{h.cfg.CurrentWeek}
	}
	for _, w := range weeks {
		h.stores.rosters = append(h.stores.rosters, models.RosterRow{
			ID:         uuid.New(),
			LeagueID:   h.cfg.ID,
			TeamID:     tid,
			PlayerID:   pid,
			Year:       h.cfg.CurrentYear,
			Week:       w,
			Slot:       slot,
			Tag:        models.TagRegular,
			Value:      value,
			Position:   h.players[pid].Position,
			AcquiredAt: h.now.AddDate(0, 0, -30),
		})
	}
}

func (h *harness) setTag(pid uuid.UUID, tag models.Tag) {
	for i := range h.stores.rosters {
		if h.stores.rosters[i].PlayerID == pid {
			h.stores.rosters[i].Tag = tag
		}
	}
}

func (h *harness) appendLedger(txType models.TransactionType, tid, pid uuid.UUID, week, value int, at time.Time) models.Transaction {
	tx := models.Transaction{
		UID:       uuid.New(),
		Type:      txType,
		PlayerID:  pid,
		TeamID:    tid,
		LeagueID:  h.cfg.ID,
		Week:      week,
		Year:      h.cfg.CurrentYear,
		Value:     value,
		Timestamp: at,
	}
	h.stores.ledger = append(h.stores.ledger, tx)
	return tx
}

func (h *harness) rosterRowsFor(tid, pid uuid.UUID) []models.RosterRow {
	var out []models.RosterRow
	for _, r := range h.stores.rosters {
		if r.TeamID == tid && r.PlayerID == pid {
			out = append(out, r)
		}
	}
	return out
}

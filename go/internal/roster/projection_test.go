package roster

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/gridiron/go/internal/models"
)

func testConfig() *models.LeagueConfig {
	return &models.LeagueConfig{
		ID:                    uuid.New(),
		Cap:                   200,
		BenchLimit:            5,
		PracticeSquadLimit:    2,
		ReserveShortTermLimit: 1,
		ReserveCOVLimit:       1,
		PositionLimits: map[models.Position]int{
			models.PositionQB: 2,
			models.PositionWR: 3,
		},
	}
}

func row(pid uuid.UUID, slot models.Slot, pos models.Position, value int) models.RosterRow {
	return models.RosterRow{
		ID:       uuid.New(),
		PlayerID: pid,
		Slot:     slot,
		Position: pos,
		Value:    value,
	}
}

func TestBuildRejectsDuplicatePlayer(t *testing.T) {
	cfg := testConfig()
	team := &models.Team{ID: uuid.New()}
	pid := uuid.New()

	_, err := Build(cfg, team, []models.RosterRow{
		row(pid, models.SlotActive, models.PositionQB, 10),
		row(pid, models.SlotBench, models.PositionQB, 10),
	}, 2025, 3)
	require.Error(t, err)
}

func TestSlotViews(t *testing.T) {
	cfg := testConfig()
	team := &models.Team{ID: uuid.New()}

	rows := []models.RosterRow{
		row(uuid.New(), models.SlotActive, models.PositionQB, 40),
		row(uuid.New(), models.SlotBench, models.PositionWR, 10),
		row(uuid.New(), models.SlotPS, models.PositionWR, 2),
		row(uuid.New(), models.SlotPSDP, models.PositionRB, 2),
		row(uuid.New(), models.SlotIR, models.PositionTE, 15),
	}
	ros, err := Build(cfg, team, rows, 2025, 3)
	require.NoError(t, err)

	assert.Len(t, ros.All(), 5)
	assert.Len(t, ros.Active(), 2)
	assert.Len(t, ros.Starters(), 1)
	assert.Len(t, ros.Practice(), 2)
	assert.Len(t, ros.Reserve(), 1)
	assert.True(t, ros.Has(rows[0].PlayerID))
	assert.False(t, ros.Has(uuid.New()))
}

func TestCapAndSpaceArithmetic(t *testing.T) {
	cfg := testConfig()
	team := &models.Team{ID: uuid.New(), CapPenalty: 10}

	rows := []models.RosterRow{
		row(uuid.New(), models.SlotActive, models.PositionQB, 40),
		row(uuid.New(), models.SlotBench, models.PositionWR, 25),
		// Reserve and practice squad values stay off the cap.
		row(uuid.New(), models.SlotIR, models.PositionTE, 50),
		row(uuid.New(), models.SlotPS, models.PositionWR, 2),
	}
	ros, err := Build(cfg, team, rows, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 200-10-40-25, ros.AvailableCap())
	assert.Equal(t, 5-2, ros.AvailableSpace())
}

func TestIsEligibleForSlotPositionLimits(t *testing.T) {
	cfg := testConfig()
	team := &models.Team{ID: uuid.New()}

	rows := []models.RosterRow{
		row(uuid.New(), models.SlotActive, models.PositionQB, 30),
		row(uuid.New(), models.SlotBench, models.PositionQB, 10),
	}
	ros, err := Build(cfg, team, rows, 2025, 3)
	require.NoError(t, err)

	// QB limit of 2 is exhausted; WR is open; RB has no limit configured.
	assert.False(t, ros.IsEligibleForSlot(models.SlotBench, models.PositionQB))
	assert.True(t, ros.IsEligibleForSlot(models.SlotBench, models.PositionWR))
	assert.True(t, ros.IsEligibleForSlot(models.SlotBench, models.PositionRB))
	// Limits only apply to active-roster slots.
	assert.True(t, ros.IsEligibleForSlot(models.SlotPS, models.PositionQB))
}

func TestOpenSlotChecks(t *testing.T) {
	cfg := testConfig()
	team := &models.Team{ID: uuid.New()}

	rows := []models.RosterRow{
		row(uuid.New(), models.SlotPS, models.PositionWR, 2),
		row(uuid.New(), models.SlotPSD, models.PositionRB, 2),
		row(uuid.New(), models.SlotIR, models.PositionTE, 10),
	}
	ros, err := Build(cfg, team, rows, 2025, 3)
	require.NoError(t, err)

	assert.False(t, ros.HasOpenPracticeSquadSlot())
	assert.False(t, ros.HasOpenReserveShortTermSlot())
	assert.True(t, ros.HasOpenReserveCOVSlot())
}

func TestMutationsStayInMemory(t *testing.T) {
	cfg := testConfig()
	team := &models.Team{ID: uuid.New()}
	pid := uuid.New()

	ros, err := Build(cfg, team, []models.RosterRow{
		row(pid, models.SlotPS, models.PositionWR, 2),
	}, 2025, 3)
	require.NoError(t, err)

	work := ros.Copy()
	require.NoError(t, work.UpdateSlot(pid, models.SlotBench))
	work.RemovePlayer(pid)
	require.NoError(t, work.AddPlayer(row(uuid.New(), models.SlotBench, models.PositionRB, 5)))

	// The source projection is untouched by working-copy mutations.
	got, ok := ros.Get(pid)
	require.True(t, ok)
	assert.Equal(t, models.SlotPS, got.Slot)
	assert.Len(t, ros.All(), 1)

	assert.Error(t, work.AddPlayer(row(work.All()[0].PlayerID, models.SlotBench, models.PositionRB, 5)))
	assert.Error(t, work.UpdateSlot(uuid.New(), models.SlotBench))
}

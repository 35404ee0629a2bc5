package rules

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/gridiron/go/internal/models"
)

func psTx(txType models.TransactionType, at time.Time) models.Transaction {
	return models.Transaction{UID: uuid.New(), Type: txType, Timestamp: at}
}

func TestPracticeSquadEligibility(t *testing.T) {
	base := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   PracticeSquadInput
		want bool
	}{
		{
			name: "fresh signing with no history",
			in:   PracticeSquadInput{},
			want: true,
		},
		{
			name: "already on practice squad",
			in:   PracticeSquadInput{Slot: models.SlotPS, OnRoster: true},
			want: false,
		},
		{
			name: "drafted then reserved",
			in: PracticeSquadInput{
				Slot:     models.SlotIR,
				OnRoster: true,
				Transactions: []models.Transaction{
					psTx(models.TxReserveIR, base.AddDate(0, 0, 10)),
					psTx(models.TxDraft, base),
				},
			},
			want: true,
		},
		{
			name: "activated since last qualifying event",
			in: PracticeSquadInput{
				Transactions: []models.Transaction{
					psTx(models.TxRosterActivate, base.AddDate(0, 0, 10)),
					psTx(models.TxPracticeAdd, base),
				},
			},
			want: false,
		},
		{
			name: "poached since last qualifying event",
			in: PracticeSquadInput{
				Transactions: []models.Transaction{
					psTx(models.TxPoached, base.AddDate(0, 0, 10)),
					psTx(models.TxPracticeAdd, base),
				},
			},
			want: false,
		},
		{
			name: "market acquisition before qualifying event",
			in: PracticeSquadInput{
				Transactions: []models.Transaction{
					psTx(models.TxRosterAdd, base.AddDate(0, 0, 10)),
					psTx(models.TxDraft, base),
				},
			},
			want: false,
		},
		{
			name: "trade before qualifying event",
			in: PracticeSquadInput{
				Transactions: []models.Transaction{
					psTx(models.TxTrade, base.AddDate(0, 0, 10)),
					psTx(models.TxPracticeAdd, base),
				},
			},
			want: false,
		},
		{
			name: "qualifying event most recent",
			in: PracticeSquadInput{
				Transactions: []models.Transaction{
					psTx(models.TxPracticeAdd, base.AddDate(0, 0, 10)),
					psTx(models.TxRosterAdd, base),
				},
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPracticeSquadEligible(tc.in))
		})
	}
}

// Same-timestamp rows resolve by uid descending, matching the ledger's
// stored order. The walk must honor whatever order it is handed.
func TestPracticeSquadEligibilitySameTimestampOrder(t *testing.T) {
	at := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	add := psTx(models.TxRosterAdd, at)
	practice := psTx(models.TxPracticeAdd, at)

	// Ledger order with practice-add first: eligible.
	assert.True(t, IsPracticeSquadEligible(PracticeSquadInput{
		Transactions: []models.Transaction{practice, add},
	}))

	// Ledger order with roster-add first: ineligible.
	assert.False(t, IsPracticeSquadEligible(PracticeSquadInput{
		Transactions: []models.Transaction{add, practice},
	}))
}

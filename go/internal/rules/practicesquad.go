package rules

import "github.com/mcdev12/gridiron/go/internal/models"

// PracticeSquadInput carries what IsPracticeSquadEligible needs: the
// player's current slot and their full (league, player) ledger ordered by
// (timestamp desc, uid desc).
type PracticeSquadInput struct {
	Slot         models.Slot
	OnRoster     bool
	Transactions []models.Transaction
}

// IsPracticeSquadEligible reports whether a player may occupy a practice
// squad slot. A player already on the practice squad is not re-eligible, and
// the ledger walk disqualifies anyone who was activated, poached, traded, or
// acquired on the open market since their last practice-squad-qualifying
// event. The walk takes the ledger in its stored (timestamp desc, uid desc)
// order, so same-timestamp rows resolve by uid.
func IsPracticeSquadEligible(in PracticeSquadInput) bool {
	if in.OnRoster && in.Slot.IsPracticeSquad() {
		return false
	}
	for _, tx := range in.Transactions {
		switch tx.Type {
		case models.TxRosterActivate, models.TxPoached:
			return false
		case models.TxRosterAdd, models.TxTrade:
			return false
		case models.TxPracticeAdd, models.TxDraft:
			return true
		}
	}
	// No ledger history: a fresh signing is practice squad eligible.
	return true
}

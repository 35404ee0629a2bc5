package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType identifies the kind of ledger entry.
type TransactionType string

const (
	TxRosterAdd         TransactionType = "ROSTER_ADD"
	TxRosterRelease     TransactionType = "ROSTER_RELEASE"
	TxRosterActivate    TransactionType = "ROSTER_ACTIVATE"
	TxRosterDeactivate  TransactionType = "ROSTER_DEACTIVATE"
	TxDraft             TransactionType = "DRAFT"
	TxPracticeAdd       TransactionType = "PRACTICE_ADD"
	TxReserveIR         TransactionType = "RESERVE_IR"
	TxReserveIRLongTerm TransactionType = "RESERVE_IR_LONG_TERM"
	TxReserveCOV        TransactionType = "RESERVE_COV"
	TxPoached           TransactionType = "POACHED"
	TxSuperPriority     TransactionType = "SUPER_PRIORITY"
	TxTransitionTag     TransactionType = "TRANSITION_TAG"
	TxFranchiseTag      TransactionType = "FRANCHISE_TAG"
	TxTransitionBid     TransactionType = "TRANSITION_BID"
	TxRestrictedFABid   TransactionType = "RESTRICTED_FA_BID"
	TxExtension         TransactionType = "EXTENSION"
	TxTrade             TransactionType = "TRADE"
)

// IsPracticeSquadQualifying reports whether the transaction type places a
// player on (or qualifies them for) a practice squad.
func (t TransactionType) IsPracticeSquadQualifying() bool {
	return t == TxPracticeAdd || t == TxDraft
}

// Transaction is one immutable, append-only ledger entry. The current roster
// standing of a (league, player) pair is always derivable by scanning its
// transactions ordered by (timestamp desc, uid desc).
type Transaction struct {
	UID       uuid.UUID       `json:"uid" db:"uid"`
	Type      TransactionType `json:"type" db:"type"`
	PlayerID  uuid.UUID       `json:"player_id" db:"player_id"`
	TeamID    uuid.UUID       `json:"team_id" db:"team_id"`
	LeagueID  uuid.UUID       `json:"league_id" db:"league_id"`
	Week      int             `json:"week" db:"week"`
	Year      int             `json:"year" db:"year"`
	Value     int             `json:"value" db:"value"`
	WaiverID  *uuid.UUID      `json:"waiver_id,omitempty" db:"waiver_id"`
	UserID    *uuid.UUID      `json:"user_id,omitempty" db:"user_id"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
}

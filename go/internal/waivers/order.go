package waivers

import (
	"bytes"
	"sort"

	"github.com/mcdev12/gridiron/go/internal/models"
)

// ResolutionEntry pairs a waiver with its claiming team's waiver order,
// which lives on the team row rather than the waiver itself.
type ResolutionEntry struct {
	Waiver          models.Waiver
	TeamWaiverOrder int
}

// SortResolutionOrder sorts waivers into processing order:
// (bid desc, team waiver_order asc, po asc, uid asc). The uid tie-break
// keeps resolution deterministic when everything else matches.
func SortResolutionOrder(entries []ResolutionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Waiver.Bid != b.Waiver.Bid {
			return a.Waiver.Bid > b.Waiver.Bid
		}
		if a.TeamWaiverOrder != b.TeamWaiverOrder {
			return a.TeamWaiverOrder < b.TeamWaiverOrder
		}
		if a.Waiver.PO != b.Waiver.PO {
			return a.Waiver.PO < b.Waiver.PO
		}
		return bytes.Compare(a.Waiver.UID[:], b.Waiver.UID[:]) < 0
	})
}

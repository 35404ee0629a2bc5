package engine

import (
	"errors"
	"fmt"
)

// ViolationCode classifies a rule violation raised during the validate
// phase. Validation failure means zero writes occurred.
type ViolationCode string

const (
	ViolationInvalidPlayer        ViolationCode = "INVALID_PLAYER"
	ViolationNotOnRoster          ViolationCode = "NOT_ON_ROSTER"
	ViolationProtectedPlayer      ViolationCode = "PROTECTED_PLAYER"
	ViolationLockedStarter        ViolationCode = "LOCKED_STARTER"
	ViolationPendingClaimConflict ViolationCode = "PENDING_CLAIM_CONFLICT"
	ViolationIneligibleForSlot    ViolationCode = "INELIGIBLE_FOR_SLOT"
	ViolationCapacityExceeded     ViolationCode = "CAPACITY_EXCEEDED"
	ViolationSanctuaryPeriod      ViolationCode = "SANCTUARY_PERIOD_ACTIVE"
	ViolationNotEligibleTag       ViolationCode = "NOT_ELIGIBLE_TAG"
)

// RuleViolation is a typed validation failure. Reason is human-readable and
// surfaced directly to the submitting user.
type RuleViolation struct {
	Code   ViolationCode
	Reason string
}

func (v *RuleViolation) Error() string {
	return v.Reason
}

func violation(code ViolationCode, format string, args ...interface{}) *RuleViolation {
	return &RuleViolation{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// AsRuleViolation unwraps err into a RuleViolation when it is one.
func AsRuleViolation(err error) (*RuleViolation, bool) {
	var v *RuleViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

package rules

import (
	"fmt"

	"loadtest-report/internal/shared/svcerrors"
)

// Rule configuration errors. All of them abort the report run.
const (
	codeInvalidPattern          = "RUL_1000"
	codeUnsatisfiableGroupRef   = "RUL_1001"
	codeBackwardJump            = "RUL_1002"
	codeRuleIDsNotAscending     = "RUL_1003"
	codeDuplicateRuleID         = "RUL_1004"
	codePrecheckNotRequired     = "RUL_1005"
	codeInvalidRuntimeIntervals = "RUL_1006"
	codeInvalidRuleID           = "RUL_1007"
	codeInvalidDefinitions      = "RUL_1008"
)

func errInvalidPattern(ruleID int, property, expr string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidPattern,
		fmt.Sprintf("rule %d: invalid regular expression in %s: %q", ruleID, property, expr), cause)
}

func errUnsatisfiableGroupRef(ruleID int, placeholder string, groups int) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeUnsatisfiableGroupRef,
		fmt.Sprintf("rule %d: new name references %s but the pattern has %d capturing group(s)", ruleID, placeholder, groups), nil)
}

func errUnsatisfiableGroupRefEmptyPattern(ruleID int, placeholder string) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeUnsatisfiableGroupRef,
		fmt.Sprintf("rule %d: new name references %s but the pattern is empty", ruleID, placeholder), nil)
}

func errBackwardJump(ruleID int, property string, target int) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeBackwardJump,
		fmt.Sprintf("rule %d: %s %d points backwards; jump targets must be >= the rule's own id", ruleID, property, target), nil)
}

func errRuleIDsNotAscending(previousID, ruleID int) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeRuleIDsNotAscending,
		fmt.Sprintf("rule %d follows rule %d; rule ids must be strictly ascending", ruleID, previousID), nil)
}

func errDuplicateRuleID(ruleID int) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeDuplicateRuleID,
		fmt.Sprintf("rule id %d is defined more than once", ruleID), nil)
}

func errPrecheckNotRequired(ruleID int, property, precheck, expr string) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codePrecheckNotRequired,
		fmt.Sprintf("rule %d: %s %q is not a literal every match of %q must contain", ruleID, property, precheck, expr), nil)
}

func errInvalidRuntimeIntervals(ruleID int, intervals string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidRuntimeIntervals,
		fmt.Sprintf("rule %d: invalid runtime intervals %q", ruleID, intervals), cause)
}

func errInvalidRuleID(ruleID int) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidRuleID,
		fmt.Sprintf("rule id %d is invalid; ids must be >= 0", ruleID), nil)
}

func errInvalidDefinitions(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidDefinitions, msg, cause)
}

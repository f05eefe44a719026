package rules

import (
	"sort"

	"loadtest-report/internal/models"
)

// Decision is the final verdict of the rule table for one record.
type Decision int

const (
	Accepted Decision = iota
	Dropped
)

func (d Decision) String() string {
	if d == Dropped {
		return "dropped"
	}
	return "accepted"
}

// RuleTable evaluates request records against an ordered list of rules.
// Jumps only go forward, so a walk evaluates each rule at most once.
//
// Jump targets are resolved once at construction: matchNext[i] and
// noMatchNext[i] hold the index of the rule evaluated after rule i, where
// len(rules) ends the walk and accepts the record.
type RuleTable struct {
	rules       []*Rule
	matchNext   []int
	noMatchNext []int
}

// NewRuleTable validates that rule ids are unique and strictly ascending.
func NewRuleTable(rules []*Rule) (*RuleTable, error) {
	for i := 1; i < len(rules); i++ {
		prev, cur := rules[i-1].ID(), rules[i].ID()
		if cur == prev {
			return nil, errDuplicateRuleID(cur)
		}
		if cur < prev {
			return nil, errRuleIDsNotAscending(prev, cur)
		}
	}

	t := &RuleTable{
		rules:       rules,
		matchNext:   make([]int, len(rules)),
		noMatchNext: make([]int, len(rules)),
	}
	for i, r := range rules {
		t.matchNext[i] = t.resolve(i, r.MatchJumpID())
		t.noMatchNext[i] = t.resolve(i, r.NoMatchJumpID())
	}
	return t, nil
}

// resolve maps a jump target of rule i to a table index. The rule's own id
// means the next rule; any other id means the first rule with id >= target.
func (t *RuleTable) resolve(i, target int) int {
	if target == t.rules[i].ID() {
		return i + 1
	}
	return sort.Search(len(t.rules), func(j int) bool { return t.rules[j].ID() >= target })
}

// Apply walks the table for rec, renaming it in place, and reports whether
// the record is kept.
func (t *RuleTable) Apply(rec *models.RequestRecord) Decision {
	return t.walk(rec, nil)
}

// walk is Apply with an optional visit callback, called once per evaluated
// rule. Only tests pass a non-nil visit.
func (t *RuleTable) walk(rec *models.RequestRecord, visit func(index int, outcome Outcome)) Decision {
	i := 0
	for i < len(t.rules) {
		outcome := t.rules[i].Evaluate(rec)
		if visit != nil {
			visit(i, outcome)
		}

		switch outcome.Kind {
		case OutcomeDrop:
			return Dropped
		case OutcomeStop:
			return Accepted
		case OutcomeMatchJump:
			i = t.matchNext[i]
		default:
			i = t.noMatchNext[i]
		}
	}
	return Accepted
}

func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Rules returns the rules in evaluation order.
func (t *RuleTable) Rules() []*Rule {
	return append([]*Rule(nil), t.rules...)
}

package rules

import (
	"fmt"
	"strings"

	"loadtest-report/internal/models"
)

// Definition is the raw configuration of one request merge rule.
// Empty patterns do not constrain the record.
type Definition struct {
	ID      int
	NewName string

	NamePattern        string
	NameExcludePattern string

	URLPattern        string
	URLExcludePattern string
	URLPrecheck       string

	ContentTypePattern        string
	ContentTypeExcludePattern string

	StatusCodePattern        string
	StatusCodeExcludePattern string

	AgentPattern        string
	AgentExcludePattern string

	TransactionPattern        string
	TransactionExcludePattern string

	MethodPattern        string
	MethodExcludePattern string

	RuntimeIntervals string

	DropOnMatch bool
	StopOnMatch bool

	// MatchJumpID and NoMatchJumpID name the rule evaluated next. A target
	// equal to ID continues with the next rule in table order.
	MatchJumpID   int
	NoMatchJumpID int
}

func (d *Definition) includeExprs() [numCategories]string {
	return [numCategories]string{d.NamePattern, d.URLPattern, d.ContentTypePattern, d.StatusCodePattern, d.AgentPattern, d.TransactionPattern, d.MethodPattern}
}

func (d *Definition) excludeExprs() [numCategories]string {
	return [numCategories]string{d.NameExcludePattern, d.URLExcludePattern, d.ContentTypeExcludePattern, d.StatusCodeExcludePattern, d.AgentExcludePattern, d.TransactionExcludePattern, d.MethodExcludePattern}
}

// HasPatterns reports whether at least one include or exclude pattern is set.
func (d *Definition) HasPatterns() bool {
	for _, expr := range d.includeExprs() {
		if expr != "" {
			return true
		}
	}
	for _, expr := range d.excludeExprs() {
		if expr != "" {
			return true
		}
	}
	return false
}

// OutcomeKind says how the walk over the rule table continues after a rule.
type OutcomeKind int

const (
	// OutcomeDrop discards the record.
	OutcomeDrop OutcomeKind = iota
	// OutcomeStop accepts the record with its current name.
	OutcomeStop
	// OutcomeMatchJump continues at the match jump target.
	OutcomeMatchJump
	// OutcomeNoMatchJump continues at the no-match jump target.
	OutcomeNoMatchJump
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDrop:
		return "drop"
	case OutcomeStop:
		return "stop"
	case OutcomeMatchJump:
		return "match-jump"
	case OutcomeNoMatchJump:
		return "no-match-jump"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of evaluating one rule against one record.
type Outcome struct {
	Kind     OutcomeKind
	TargetID int // only meaningful for the jump kinds
}

// Rule is an immutable, validated request merge rule. It is safe for
// concurrent use: per-record state lives on the stack of Evaluate.
type Rule struct {
	id        int
	newName   *template
	includes  [numCategories]*pattern
	excludes  [numCategories]*pattern
	intervals *RuntimeIntervals

	dropOnMatch   bool
	stopOnMatch   bool
	matchJumpID   int
	noMatchJumpID int
}

// NewRule compiles and validates a rule definition.
func NewRule(def Definition) (*Rule, error) {
	if def.ID < 0 {
		return nil, errInvalidRuleID(def.ID)
	}
	if def.MatchJumpID < def.ID {
		return nil, errBackwardJump(def.ID, "match jump id", def.MatchJumpID)
	}
	if def.NoMatchJumpID < def.ID {
		return nil, errBackwardJump(def.ID, "no-match jump id", def.NoMatchJumpID)
	}

	r := &Rule{
		id:            def.ID,
		dropOnMatch:   def.DropOnMatch,
		stopOnMatch:   def.StopOnMatch,
		matchJumpID:   def.MatchJumpID,
		noMatchJumpID: def.NoMatchJumpID,
	}

	includes, excludes := def.includeExprs(), def.excludeExprs()
	for i := 0; i < numCategories; i++ {
		c := Category(i)
		p, err := compilePattern(includes[i])
		if err != nil {
			return nil, errInvalidPattern(def.ID, c.String()+" pattern", includes[i], err)
		}
		r.includes[i] = p

		p, err = compilePattern(excludes[i])
		if err != nil {
			return nil, errInvalidPattern(def.ID, c.String()+" exclude pattern", excludes[i], err)
		}
		r.excludes[i] = p
	}

	withPrecheck, ok := r.includes[CategoryURL].withPrecheck(def.URLPrecheck)
	if !ok {
		return nil, errPrecheckNotRequired(def.ID, "url precheck", def.URLPrecheck, def.URLPattern)
	}
	r.includes[CategoryURL] = withPrecheck

	intervals, err := ParseRuntimeIntervals(def.RuntimeIntervals)
	if err != nil {
		return nil, errInvalidRuntimeIntervals(def.ID, def.RuntimeIntervals, err)
	}
	r.intervals = intervals

	r.newName, err = parseTemplate(def.ID, def.NewName, &r.includes)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rule) ID() int { return r.id }

func (r *Rule) DropOnMatch() bool { return r.dropOnMatch }

func (r *Rule) StopOnMatch() bool { return r.stopOnMatch }

func (r *Rule) MatchJumpID() int { return r.matchJumpID }

func (r *Rule) NoMatchJumpID() int { return r.noMatchJumpID }

// Evaluate applies the rule to rec. A matching, non-dropping rule renames rec.
func (r *Rule) Evaluate(rec *models.RequestRecord) Outcome {
	var captures [numCategories][]string
	if !r.match(rec, &captures) {
		return Outcome{Kind: OutcomeNoMatchJump, TargetID: r.noMatchJumpID}
	}
	if r.dropOnMatch {
		return Outcome{Kind: OutcomeDrop}
	}

	if !r.newName.isEmpty() {
		rec.Name = r.newName.expand(rec, &captures, func() string {
			return r.intervals.Label(rec.Runtime)
		})
	}

	if r.stopOnMatch {
		return Outcome{Kind: OutcomeStop}
	}
	return Outcome{Kind: OutcomeMatchJump, TargetID: r.matchJumpID}
}

// match reports whether every category is satisfied: the include pattern is
// empty or matches, and the exclude pattern is empty or does not match.
func (r *Rule) match(rec *models.RequestRecord, captures *[numCategories][]string) bool {
	for i := 0; i < numCategories; i++ {
		include, exclude := r.includes[i], r.excludes[i]
		if include.isEmpty() && exclude.isEmpty() {
			continue
		}

		value := fieldValue(rec, Category(i))
		if !include.isEmpty() {
			groups := include.find(value)
			if groups == nil {
				return false
			}
			captures[i] = groups
		}
		if !exclude.isEmpty() && exclude.matches(value) {
			return false
		}
	}
	return true
}

// String describes the rule for diagnostics.
func (r *Rule) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rule %d: newName=%s", r.id, r.newName)
	for i := 0; i < numCategories; i++ {
		if !r.includes[i].isEmpty() {
			fmt.Fprintf(&sb, " %s=%q", Category(i), r.includes[i].expr)
		}
		if !r.excludes[i].isEmpty() {
			fmt.Fprintf(&sb, " %s!=%q", Category(i), r.excludes[i].expr)
		}
	}
	fmt.Fprintf(&sb, " drop=%t stop=%t matchJump=%d noMatchJump=%d", r.dropOnMatch, r.stopOnMatch, r.matchJumpID, r.noMatchJumpID)
	return sb.String()
}

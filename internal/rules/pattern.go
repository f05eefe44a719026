package rules

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

// pattern is a compiled include or exclude expression of one rule category.
// An empty pattern matches nothing and is skipped by the evaluation.
//
// precheck is a literal that every match of re contains. When a value lacks it
// the regex cannot match, so the evaluation is skipped.
type pattern struct {
	expr     string
	re       *regexp.Regexp
	precheck string
}

var emptyPattern = &pattern{}

func compilePattern(expr string) (*pattern, error) {
	if expr == "" {
		return emptyPattern, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &pattern{expr: expr, re: re, precheck: longest(requiredLiterals(expr))}, nil
}

func (p *pattern) isEmpty() bool {
	return p.re == nil
}

func (p *pattern) numGroups() int {
	if p.re == nil {
		return 0
	}
	return p.re.NumSubexp()
}

// find returns the whole match followed by the capturing groups, or nil.
func (p *pattern) find(value string) []string {
	if p.precheck != "" && !strings.Contains(value, p.precheck) {
		return nil
	}
	return p.re.FindStringSubmatch(value)
}

func (p *pattern) matches(value string) bool {
	if p.precheck != "" && !strings.Contains(value, p.precheck) {
		return false
	}
	return p.re.MatchString(value)
}

// withPrecheck replaces the derived precheck with a configured one. The configured
// text must be part of a literal the expression requires, otherwise the fast path
// would reject values the regex matches.
func (p *pattern) withPrecheck(precheck string) (*pattern, bool) {
	if precheck == "" {
		return p, true
	}
	if p.isEmpty() {
		return nil, false
	}
	for _, literal := range requiredLiterals(p.expr) {
		if strings.Contains(literal, precheck) {
			return &pattern{expr: p.expr, re: p.re, precheck: precheck}, true
		}
	}
	return nil, false
}

// requiredLiterals returns case-sensitive literal runs that appear in every
// match of expr. The analysis is conservative: alternations and optional
// parts contribute nothing.
func requiredLiterals(expr string) []string {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return nil
	}
	return collectLiterals(re.Simplify())
}

func collectLiterals(re *syntax.Regexp) []string {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return nil
		}
		return []string{string(re.Rune)}
	case syntax.OpCapture, syntax.OpPlus:
		return collectLiterals(re.Sub[0])
	case syntax.OpRepeat:
		if re.Min >= 1 {
			return collectLiterals(re.Sub[0])
		}
	case syntax.OpConcat:
		var literals []string
		for _, sub := range re.Sub {
			literals = append(literals, collectLiterals(sub)...)
		}
		return literals
	}
	return nil
}

func longest(literals []string) string {
	best := ""
	for _, l := range literals {
		if len(l) > len(best) {
			best = l
		}
	}
	return best
}

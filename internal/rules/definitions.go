package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// definitionsDocument is the YAML layout of a rule table file:
//
//	request_merge_rules:
//	  - id: 10
//	    new_name: "{n} [{s}]"
//	    status_code_pattern: "^[45]"
//	  - id: 20
//	    url_pattern: "/static/"
//	    drop_on_match: true
type definitionsDocument struct {
	Rules []definitionYAML `yaml:"request_merge_rules"`
}

type definitionYAML struct {
	ID      *int   `yaml:"id"`
	NewName string `yaml:"new_name"`

	NamePattern        string `yaml:"name_pattern"`
	NameExcludePattern string `yaml:"name_exclude_pattern"`

	URLPattern        string `yaml:"url_pattern"`
	URLExcludePattern string `yaml:"url_exclude_pattern"`
	URLPrecheck       string `yaml:"url_precheck"`

	ContentTypePattern        string `yaml:"content_type_pattern"`
	ContentTypeExcludePattern string `yaml:"content_type_exclude_pattern"`

	StatusCodePattern        string `yaml:"status_code_pattern"`
	StatusCodeExcludePattern string `yaml:"status_code_exclude_pattern"`

	AgentPattern        string `yaml:"agent_pattern"`
	AgentExcludePattern string `yaml:"agent_exclude_pattern"`

	TransactionPattern        string `yaml:"transaction_pattern"`
	TransactionExcludePattern string `yaml:"transaction_exclude_pattern"`

	MethodPattern        string `yaml:"method_pattern"`
	MethodExcludePattern string `yaml:"method_exclude_pattern"`

	RuntimeIntervals string `yaml:"runtime_intervals"`

	DropOnMatch   bool  `yaml:"drop_on_match"`
	StopOnMatch   *bool `yaml:"stop_on_match"`
	MatchJumpID   *int  `yaml:"match_jump_id"`
	NoMatchJumpID *int  `yaml:"no_match_jump_id"`
}

// LoadDefinitionsFile reads rule definitions from a YAML file.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errInvalidDefinitions(fmt.Sprintf("cannot read rule file %q", path), err)
	}
	defer f.Close()

	return LoadDefinitions(f)
}

// LoadDefinitions decodes rule definitions, rejecting unknown keys, and applies
// the defaults: stop_on_match is true and both jump ids equal the rule id.
// Every rule needs a pattern, and non-dropping rules need a new name.
func LoadDefinitions(r io.Reader) ([]Definition, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc definitionsDocument
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errInvalidDefinitions("cannot decode rule definitions", err)
	}

	defs := make([]Definition, 0, len(doc.Rules))
	for i, raw := range doc.Rules {
		if raw.ID == nil {
			return nil, errInvalidDefinitions(fmt.Sprintf("rule at position %d has no id", i), nil)
		}
		def := Definition{
			ID:                        *raw.ID,
			NewName:                   raw.NewName,
			NamePattern:               raw.NamePattern,
			NameExcludePattern:        raw.NameExcludePattern,
			URLPattern:                raw.URLPattern,
			URLExcludePattern:         raw.URLExcludePattern,
			URLPrecheck:               raw.URLPrecheck,
			ContentTypePattern:        raw.ContentTypePattern,
			ContentTypeExcludePattern: raw.ContentTypeExcludePattern,
			StatusCodePattern:         raw.StatusCodePattern,
			StatusCodeExcludePattern:  raw.StatusCodeExcludePattern,
			AgentPattern:              raw.AgentPattern,
			AgentExcludePattern:       raw.AgentExcludePattern,
			TransactionPattern:        raw.TransactionPattern,
			TransactionExcludePattern: raw.TransactionExcludePattern,
			MethodPattern:             raw.MethodPattern,
			MethodExcludePattern:      raw.MethodExcludePattern,
			RuntimeIntervals:          raw.RuntimeIntervals,
			DropOnMatch:               raw.DropOnMatch,
			StopOnMatch:               true,
			MatchJumpID:               *raw.ID,
			NoMatchJumpID:             *raw.ID,
		}
		if raw.StopOnMatch != nil {
			def.StopOnMatch = *raw.StopOnMatch
		}
		if raw.MatchJumpID != nil {
			def.MatchJumpID = *raw.MatchJumpID
		}
		if raw.NoMatchJumpID != nil {
			def.NoMatchJumpID = *raw.NoMatchJumpID
		}

		if !def.HasPatterns() {
			return nil, errInvalidDefinitions(fmt.Sprintf("rule %d: at least one pattern must be set", def.ID), nil)
		}
		if !def.DropOnMatch && def.NewName == "" {
			return nil, errInvalidDefinitions(fmt.Sprintf("rule %d: new_name is required unless drop_on_match is set", def.ID), nil)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// BuildRuleTable compiles definitions in the given order into a rule table.
// The first invalid rule aborts the build.
func BuildRuleTable(defs []Definition) (*RuleTable, error) {
	rules := make([]*Rule, 0, len(defs))
	for _, def := range defs {
		rule, err := NewRule(def)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return NewRuleTable(rules)
}

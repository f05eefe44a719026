package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"loadtest-report/internal/models"
)

// Category is one of the record fields a rule can match on.
type Category int

const (
	CategoryName Category = iota
	CategoryURL
	CategoryContentType
	CategoryStatusCode
	CategoryAgent
	CategoryTransaction
	CategoryMethod

	numCategories = int(CategoryMethod) + 1
)

// categoryRuntime is only valid in templates: it stands for the runtime bucket label.
const categoryRuntime Category = -1

var categoryNames = [numCategories]string{"name", "url", "content type", "status code", "agent", "transaction", "method"}

func (c Category) String() string {
	if c == categoryRuntime {
		return "runtime"
	}
	return categoryNames[c]
}

var placeholderCategories = map[byte]Category{
	'n': CategoryName,
	'u': CategoryURL,
	'c': CategoryContentType,
	's': CategoryStatusCode,
	'a': CategoryAgent,
	't': CategoryTransaction,
	'm': CategoryMethod,
	'r': categoryRuntime,
}

var placeholderRe = regexp.MustCompile(`\{([nucsatmr])(?::([0-9]+))?\}`)

// fieldValue returns the current value of a category field.
func fieldValue(rec *models.RequestRecord, c Category) string {
	switch c {
	case CategoryName:
		return rec.Name
	case CategoryURL:
		return rec.URL
	case CategoryContentType:
		return rec.ContentType
	case CategoryStatusCode:
		return rec.StatusCodeText()
	case CategoryAgent:
		return rec.AgentName
	case CategoryTransaction:
		return rec.TransactionName
	case CategoryMethod:
		return rec.HTTPMethod
	}
	return ""
}

// segment is a literal text or a placeholder of a rename template.
type segment struct {
	literal  string
	category Category
	group    int // -1 means the whole current field value
	isField  bool
}

// template is a parsed rename template such as "{n} [{s}]" or "{u:1}".
type template struct {
	source   string
	segments []segment
}

// parseTemplate splits src into segments and checks every indexed group
// reference against the include pattern of its category.
func parseTemplate(ruleID int, src string, includes *[numCategories]*pattern) (*template, error) {
	t := &template{source: src}
	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(src, -1) {
		if loc[0] > last {
			t.segments = append(t.segments, segment{literal: src[last:loc[0]]})
		}
		last = loc[1]

		placeholder := src[loc[0]:loc[1]]
		seg := segment{category: placeholderCategories[src[loc[2]]], group: -1, isField: true}
		if loc[4] >= 0 {
			group, err := strconv.Atoi(src[loc[4]:loc[5]])
			if err != nil {
				return nil, errUnsatisfiableGroupRef(ruleID, placeholder, 0)
			}
			seg.group = group
		}

		if seg.category == categoryRuntime {
			// the runtime has no groups, any index means the bucket label
			seg.group = -1
		} else if seg.group >= 0 {
			include := includes[seg.category]
			if include.isEmpty() {
				return nil, errUnsatisfiableGroupRefEmptyPattern(ruleID, placeholder)
			}
			if seg.group > include.numGroups() {
				return nil, errUnsatisfiableGroupRef(ruleID, placeholder, include.numGroups())
			}
		}
		t.segments = append(t.segments, seg)
	}
	if last < len(src) {
		t.segments = append(t.segments, segment{literal: src[last:]})
	}
	return t, nil
}

func (t *template) isEmpty() bool {
	return len(t.segments) == 0
}

// expand renders the template. Unindexed placeholders read the record's current
// field values; indexed ones read the include captures of this evaluation.
func (t *template) expand(rec *models.RequestRecord, captures *[numCategories][]string, runtimeLabel func() string) string {
	var sb strings.Builder
	for _, seg := range t.segments {
		switch {
		case !seg.isField:
			sb.WriteString(seg.literal)
		case seg.category == categoryRuntime:
			sb.WriteString(runtimeLabel())
		case seg.group < 0:
			sb.WriteString(fieldValue(rec, seg.category))
		default:
			if groups := captures[seg.category]; seg.group < len(groups) {
				sb.WriteString(groups[seg.group])
			}
		}
	}
	return sb.String()
}

func (t *template) String() string {
	return fmt.Sprintf("%q", t.source)
}

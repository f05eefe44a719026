package rules

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_RuntimeLabelMatchesLinearScan(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	intervals := NewRuntimeIntervals([]int64{100, 3000, 5000})
	labels := intervals.Labels()

	properties.Property("every runtime falls into the bucket a linear scan picks", prop.ForAll(
		func(runtime int64) bool {
			bucket := 0
			for _, boundary := range []int64{100, 3000, 5000} {
				if runtime >= boundary {
					bucket++
				}
			}
			return intervals.Label(runtime) == labels[bucket]
		},
		gen.Int64Range(0, 100000),
	))

	properties.TestingRun(t)
}

func TestProperty_PrecheckNeverChangesMatch(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	p, err := compilePattern("^(\\w*)/shop/(\\w+)$")
	if err != nil {
		t.Fatal(err)
	}

	properties.Property("derived precheck agrees with the regex", prop.ForAll(
		func(prefix, suffix string, withLiteral bool) bool {
			value := prefix + suffix
			if withLiteral {
				value = prefix + "/shop/" + suffix
			}
			return p.matches(value) == p.re.MatchString(value)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// randomTable builds a table of rules with random forward jumps, random
// drop and stop flags, and a name pattern matching about half the names.
func randomTable(seed int64, size int) (*RuleTable, error) {
	rnd := rand.New(rand.NewSource(seed))
	rules := make([]*Rule, 0, size)
	id := 0
	for i := 0; i < size; i++ {
		id += 1 + rnd.Intn(5)
		rule, err := NewRule(Definition{
			ID:            id,
			NewName:       fmt.Sprintf("{n}%d", rnd.Intn(2)),
			NamePattern:   "[0-9]$|^x",
			DropOnMatch:   rnd.Intn(10) == 0,
			StopOnMatch:   rnd.Intn(4) == 0,
			MatchJumpID:   id + rnd.Intn(12),
			NoMatchJumpID: id + rnd.Intn(12),
		})
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return NewRuleTable(rules)
}

func TestProperty_WalkEvaluatesEachRuleAtMostOnce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("walk terminates in table order", prop.ForAll(
		func(seed int64, size int) bool {
			table, err := randomTable(seed, size)
			if err != nil {
				return false
			}

			seen := make(map[int]bool)
			last := -1
			ordered := true
			table.walk(newRequest("x"), func(index int, _ Outcome) {
				if seen[index] || index <= last {
					ordered = false
				}
				seen[index] = true
				last = index
			})
			return ordered && len(seen) <= table.Len()
		},
		gen.Int64(),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}

func TestProperty_ClassificationIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identical records get identical decisions and names", prop.ForAll(
		func(seed int64, size int, name string) bool {
			table, err := randomTable(seed, size)
			if err != nil {
				return false
			}

			first, second := newRequest(name), newRequest(name)
			return table.Apply(first) == table.Apply(second) && first.Name == second.Name
		},
		gen.Int64(),
		gen.IntRange(0, 40),
		gen.SliceOf(gen.AlphaNumChar()).Map(func(rs []rune) string { return string(rs) }),
	))

	properties.TestingRun(t)
}

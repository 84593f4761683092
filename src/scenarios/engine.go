package scenarios

import (
	"encoding/json"
	"strings"

	"github.com/username/smarttax/backend/src/models"
)

// fieldMap converts a transaction to its generic JSON form so dotted rule
// paths resolve against the wire field names. Fields marked omitempty
// disappear at their zero value, which is exactly the "not yet entered"
// semantics the rules want.
func fieldMap(tx *models.Transaction) map[string]any {
	if tx == nil {
		return map[string]any{}
	}
	raw, err := json.Marshal(tx)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]any{}
	}
	return m
}

func lookupField(m map[string]any, path string) (any, bool) {
	var current any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// asFloat normalizes a JSON scalar for numeric comparison.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func scalarEqual(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func evaluateCondition(m map[string]any, cond Condition) bool {
	value, found := lookupField(m, cond.Field)

	switch cond.Operator {
	case OpEq:
		return found && scalarEqual(value, cond.Value)
	case OpNe:
		return !found || !scalarEqual(value, cond.Value)
	case OpIn:
		list, ok := cond.Value.([]any)
		if !ok || !found {
			return false
		}
		for _, item := range list {
			if scalarEqual(value, item) {
				return true
			}
		}
		return false
	case OpGt, OpLt, OpGte, OpLte:
		// Ordering comparisons apply to numbers only.
		lhs, lok := asFloat(value)
		rhs, rok := asFloat(cond.Value)
		if !found || !lok || !rok {
			return false
		}
		switch cond.Operator {
		case OpGt:
			return lhs > rhs
		case OpLt:
			return lhs < rhs
		case OpGte:
			return lhs >= rhs
		default:
			return lhs <= rhs
		}
	}
	return false
}

func ruleMatches(m map[string]any, rule Rule) bool {
	for _, cond := range rule.Conditions {
		if !evaluateCondition(m, cond) {
			return false
		}
	}
	return true
}

// MatchScenario returns the first rule whose conditions all hold, or nil.
func MatchScenario(tx *models.Transaction) *Rule {
	m := fieldMap(tx)
	for i := range ScenarioRules {
		if ruleMatches(m, ScenarioRules[i]) {
			return &ScenarioRules[i]
		}
	}
	return nil
}

// MatchAllScenarios returns every matching rule in declaration order. A
// transaction commonly matches both an asset-type rule and a cause rule.
func MatchAllScenarios(tx *models.Transaction) []Rule {
	m := fieldMap(tx)
	var matched []Rule
	for _, rule := range ScenarioRules {
		if ruleMatches(m, rule) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// ValidateRequiredFields reports which of a rule's required fields are still
// absent, null, or empty-string in the transaction.
func ValidateRequiredFields(tx *models.Transaction, rule *Rule) (valid bool, missing []string) {
	m := fieldMap(tx)
	for _, field := range rule.RequiredFields {
		value, found := lookupField(m, field)
		if !found || value == nil || value == "" {
			missing = append(missing, field)
		}
	}
	return len(missing) == 0, missing
}

// GetScenarioDescription joins the names of every matching rule, falling
// back to a plain-transfer label when nothing matches.
func GetScenarioDescription(tx *models.Transaction) string {
	matched := MatchAllScenarios(tx)
	if len(matched) == 0 {
		return "일반 양도"
	}
	names := make([]string, len(matched))
	for i, rule := range matched {
		names[i] = rule.Name
	}
	return strings.Join(names, " + ")
}

// HasSpecialLogic reports whether any matching rule declares the given
// special-logic marker.
func HasSpecialLogic(tx *models.Transaction, logicID string) bool {
	for _, rule := range MatchAllScenarios(tx) {
		for _, id := range rule.SpecialLogic {
			if id == logicID {
				return true
			}
		}
	}
	return false
}

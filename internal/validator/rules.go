package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/kidoz/zabbix-template-lint-go/internal/export"
)

// Value types accepted by Zabbix 7.0 exports, both the numeric codes and
// the string mnemonics.
var (
	validNumericValueTypes = map[int]bool{
		0: true, 1: true, 2: true, 3: true, 4: true, 15: true, 16: true,
	}
	validStringValueTypes = map[string]bool{
		"FLOAT": true, "CHAR": true, "LOG": true, "UNSIGNED": true,
		"TEXT": true, "BINARY": true, "STR": true,
	}
	validPriorityNames = map[string]bool{
		"NOT_CLASSIFIED": true, "INFO": true, "WARNING": true,
		"AVERAGE": true, "HIGH": true, "DISASTER": true,
	}
)

var (
	// macroNameRe is the {$UPPERCASE_WITH_UNDERSCORES} naming convention,
	// anchored on both ends and case-sensitive.
	macroNameRe = regexp.MustCompile(`^\{\$[A-Z0-9_]+\}$`)
	// legacyExpressionRe detects pre-7.0 {host:key.func()} trigger syntax.
	// Heuristic; may false-positive on new-syntax expressions, so it only
	// ever produces a warning.
	legacyExpressionRe = regexp.MustCompile(`\{[^}]+:[^}]+\.[^}]+\(\)\}`)
)

// expressionEchoLimit caps how much of a duplicate trigger expression is
// echoed back in the warning message.
const expressionEchoLimit = 50

func (v *Validator) checkItems(section *export.ItemSection, res *Result) {
	if section == nil {
		v.progress.Stepf(StatusNote, "Items: 0")
		return
	}
	v.progress.Stepf(StatusOK, "Items: %d", len(section.Items))

	seenKeys := make(map[string]bool)
	for _, item := range section.Items {
		if item.Name == nil {
			res.Errorf("item missing name")
		}

		if item.Key == nil {
			res.Errorf("item missing key")
		} else {
			key := *item.Key
			if strings.Contains(key, " ") {
				res.Warnf("item key contains spaces: '%s' (use dots or underscores instead)", key)
			}
			if seenKeys[key] {
				res.Errorf("duplicate item key: '%s'", key)
			}
			seenKeys[key] = true
		}

		if item.ValueType == nil {
			res.Errorf("item missing value_type")
		} else {
			checkValueType(*item.ValueType, res)
		}
	}
}

func checkValueType(raw string, res *Result) {
	if n, err := strconv.Atoi(raw); err == nil {
		if !validNumericValueTypes[n] {
			res.Warnf("unusual numeric value_type: %d", n)
		}
		return
	}
	if !validStringValueTypes[raw] {
		res.Warnf("unknown string value_type: '%s'", raw)
	}
}

func (v *Validator) checkDiscoveryRules(section *export.DiscoveryRuleSection, res *Result) {
	if section == nil {
		v.progress.Stepf(StatusNote, "Discovery rules: 0")
		return
	}
	v.progress.Stepf(StatusOK, "Discovery rules: %d", len(section.Rules))

	seenKeys := make(map[string]bool)
	for _, rule := range section.Rules {
		if rule.Name == nil {
			res.Errorf("discovery rule missing name")
		}

		if rule.Key == nil {
			res.Errorf("discovery rule missing key")
		} else {
			key := *rule.Key
			if seenKeys[key] {
				res.Errorf("duplicate discovery rule key: '%s'", key)
			}
			seenKeys[key] = true
		}

		if rule.ItemPrototypes != nil && len(rule.ItemPrototypes.Prototypes) == 0 {
			res.Warnf("discovery rule has no item prototypes")
		}
	}
}

func (v *Validator) checkTriggers(section *export.TriggerSection, res *Result) {
	if section == nil {
		v.progress.Stepf(StatusNote, "Triggers: 0")
		return
	}
	v.progress.Stepf(StatusOK, "Triggers: %d", len(section.Triggers))

	seenExpressions := make(map[string]bool)
	for _, trigger := range section.Triggers {
		if trigger.Name == nil {
			res.Errorf("trigger missing name")
		}

		if trigger.Expression == nil {
			res.Errorf("trigger missing expression")
		} else {
			expr := *trigger.Expression
			if seenExpressions[expr] {
				res.Warnf("duplicate trigger expression: '%s...'", truncate(expr, expressionEchoLimit))
			}
			seenExpressions[expr] = true
			checkExpression(expr, res)
		}

		checkPriority(trigger.Priority, res)
	}
}

// checkExpression validates trigger expression syntax. The balance and
// legacy-pattern checks are independent; one expression can produce
// several findings.
func checkExpression(expr string, res *Result) {
	if expr == "" {
		res.Errorf("empty trigger expression")
		return
	}

	if strings.Count(expr, "(") != strings.Count(expr, ")") {
		res.Errorf("unmatched parentheses in trigger expression")
	}
	if strings.Count(expr, "{") != strings.Count(expr, "}") {
		res.Errorf("unmatched braces in trigger expression")
	}
	if legacyExpressionRe.MatchString(expr) {
		res.Warnf("possible old-style trigger expression detected (Zabbix 7.0 uses new syntax)")
	}
}

func checkPriority(priority *string, res *Result) {
	if priority == nil {
		res.Warnf("trigger missing priority")
		return
	}
	raw := *priority
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 || n > 5 {
			res.Warnf("invalid priority value: %d (should be 0-5)", n)
		}
		return
	}
	if !validPriorityNames[raw] {
		res.Warnf("unknown string priority: '%s'", raw)
	}
}

func (v *Validator) checkMacros(section *export.MacroSection, res *Result) {
	if section == nil {
		v.progress.Stepf(StatusNote, "Macros: 0")
		return
	}
	v.progress.Stepf(StatusOK, "Macros: %d", len(section.Macros))

	seenNames := make(map[string]bool)
	for _, macro := range section.Macros {
		name := "unknown"
		if macro.Name == nil {
			res.Errorf("macro missing name")
		} else {
			name = *macro.Name
			if !macroNameRe.MatchString(name) {
				res.Warnf("macro name doesn't follow convention: '%s' (should be {$UPPERCASE_WITH_UNDERSCORES})", name)
			}
			if seenNames[name] {
				res.Errorf("duplicate macro: '%s'", name)
			}
			seenNames[name] = true
		}

		if macro.Value == nil {
			res.Warnf("macro '%s' has no value", name)
		}
	}
}

// validUUID accepts the canonical dashed 8-4-4-4-12 form and the
// 32-contiguous-hex form, upper or lower case. The length guard keeps
// uuid.Parse from accepting urn: and braced variants that Zabbix does not.
func validUUID(s string) bool {
	if len(s) != 36 && len(s) != 32 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

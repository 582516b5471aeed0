package layout

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

const (
	notationBegin = "${"
	notationEnd   = "}"
)

// Evaluator expands ${...} placeholders in layout text.
type Evaluator struct {
	data  map[string]any
	cache map[string]*vm.Program // expression string → compiled program
}

// NewEvaluator creates an Evaluator bound to data.
func NewEvaluator(data map[string]any) *Evaluator {
	if data == nil {
		data = make(map[string]any)
	}
	return &Evaluator{data: data, cache: make(map[string]*vm.Program)}
}

// Evaluate runs a single expression against the data map.
func (e *Evaluator) Evaluate(expression string) (any, error) {
	program, ok := e.cache[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.Env(e.data), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("compile expression %q: %w", expression, err)
		}
		e.cache[expression] = program
	}
	result, err := expr.Run(program, e.data)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression %q: %w", expression, err)
	}
	return result, nil
}

// Expand replaces every placeholder in value. A value that is exactly one
// placeholder keeps the typed result (e.g. a number); mixed text is joined as
// a string. Text without placeholders is returned unchanged.
func (e *Evaluator) Expand(value string) (any, error) {
	if !strings.Contains(value, notationBegin) {
		return value, nil
	}
	if single, ok := extractSingleExpression(value); ok {
		return e.Evaluate(single)
	}

	var b strings.Builder
	for _, seg := range parseExpressions(value) {
		if !seg.isExpression {
			b.WriteString(seg.text)
			continue
		}
		v, err := e.Evaluate(seg.text)
		if err != nil {
			return nil, err
		}
		if v != nil {
			fmt.Fprint(&b, v)
		}
	}
	return b.String(), nil
}

// ExpandText is Expand for places that only hold text, such as titles.
func (e *Evaluator) ExpandText(value string) (string, error) {
	v, err := e.Expand(value)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// expressionSegment is a part of a value: either literal text or an expression.
type expressionSegment struct {
	isExpression bool
	text         string // literal text or expression content (without delimiters)
}

// parseExpressions splits a value into literal and expression segments.
// For example, "Total: ${sum}" → [{false, "Total: "}, {true, "sum"}].
func parseExpressions(value string) []expressionSegment {
	var segments []expressionSegment
	remaining := value

	for {
		startIdx := strings.Index(remaining, notationBegin)
		if startIdx < 0 {
			break
		}
		searchFrom := startIdx + len(notationBegin)
		endIdx := findMatchingEnd(remaining[searchFrom:])
		if endIdx < 0 {
			break
		}
		endIdx += searchFrom

		if startIdx > 0 {
			segments = append(segments, expressionSegment{text: remaining[:startIdx]})
		}
		segments = append(segments, expressionSegment{
			isExpression: true,
			text:         remaining[searchFrom:endIdx],
		})
		remaining = remaining[endIdx+len(notationEnd):]
	}

	if remaining != "" {
		segments = append(segments, expressionSegment{text: remaining})
	}
	return segments
}

// findMatchingEnd finds the closing delimiter, skipping nested braces such as
// map literals inside an expression.
func findMatchingEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// extractSingleExpression returns the expression of a value like "${total}".
func extractSingleExpression(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, notationBegin) {
		return "", false
	}
	segs := parseExpressions(trimmed)
	if len(segs) != 1 || !segs[0].isExpression {
		return "", false
	}
	return segs[0].text, true
}

// checkSyntax compiles every placeholder in value without data and returns
// the first syntax error.
func checkSyntax(value string) error {
	if !strings.Contains(value, notationBegin) {
		return nil
	}
	for _, seg := range parseExpressions(value) {
		if !seg.isExpression {
			continue
		}
		if _, err := expr.Compile(seg.text, expr.AllowUndefinedVariables()); err != nil {
			return fmt.Errorf("invalid expression syntax %q: %w", seg.text, err)
		}
	}
	if strings.Count(value, notationBegin) != countExpressions(value) {
		return fmt.Errorf("unterminated placeholder in %q", value)
	}
	return nil
}

func countExpressions(value string) int {
	n := 0
	for _, seg := range parseExpressions(value) {
		if seg.isExpression {
			n++
		}
	}
	return n
}

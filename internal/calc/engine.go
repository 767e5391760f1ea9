// Package calc implements the calculator expression accumulator.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrorDisplay is shown when an operation cannot be evaluated, such as
// division by zero. The engine recovers on the next digit press.
const ErrorDisplay = "Error"

// Display and history limits, matching the on-screen panel.
const (
	// MaxDisplayLen caps the number of characters typed into one operand.
	MaxDisplayLen = 12
	// MaxHistory is the number of past calculations retained.
	MaxHistory = 10
)

// Entry records one completed calculation.
type Entry struct {
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	At         time.Time `json:"at"`
}

// State is a snapshot of the engine for the rendering boundary.
type State struct {
	Display  string `json:"display"`
	Operator string `json:"operator,omitempty"`
	Error    bool   `json:"error"`
}

// Engine accumulates button presses into a left-to-right expression.
// There is no operator precedence: each operator press folds the pending
// operation before storing the new one. Mutated only by Apply, once per
// press event, from the single frame loop.
type Engine struct {
	display        string
	current        string
	previous       string
	operator       string
	justCalculated bool
	history        []Entry

	// OnCalculation, if set, is invoked for every completed calculation.
	OnCalculation func(Entry)
}

// NewEngine creates an Engine showing "0".
func NewEngine() *Engine {
	return &Engine{display: "0"}
}

// Apply processes one button press by ID and returns the new display text.
// Unknown IDs leave the state untouched.
func (e *Engine) Apply(id string) string {
	switch id {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		e.pressDigit(id)
	case ".":
		e.pressDecimal()
	case "+", "-", "×", "÷":
		e.pressOperator(id)
	case "=":
		e.pressEquals()
	case "C":
		e.Clear()
	case "del":
		e.pressDelete()
	case "±":
		e.pressNegate()
	case "%":
		e.pressPercent()
	}
	return e.display
}

// Display returns the current display text.
func (e *Engine) Display() string {
	return e.display
}

// PendingOperator returns the operator awaiting its right-hand operand,
// or "" when none is pending.
func (e *Engine) PendingOperator() string {
	return e.operator
}

// State returns a snapshot for the renderer.
func (e *Engine) State() State {
	return State{
		Display:  e.display,
		Operator: e.operator,
		Error:    e.display == ErrorDisplay,
	}
}

// History returns the retained calculations, oldest first.
func (e *Engine) History() []Entry {
	out := make([]Entry, len(e.history))
	copy(out, e.history)
	return out
}

// ClearHistory drops the retained calculations.
func (e *Engine) ClearHistory() {
	e.history = nil
}

// Clear resets the engine to its initial state. History is kept.
func (e *Engine) Clear() {
	e.display = "0"
	e.current = ""
	e.previous = ""
	e.operator = ""
	e.justCalculated = false
}

func (e *Engine) pressDigit(d string) {
	switch {
	case e.justCalculated:
		e.display = d
		e.justCalculated = false
	// An empty current operand means the display still shows the previous
	// operand or an error: the digit starts a fresh operand.
	case e.current == "" || e.display == "0" || e.display == ErrorDisplay:
		e.display = d
	case len(e.display) < MaxDisplayLen:
		e.display += d
	}
	e.current = e.display
}

func (e *Engine) pressDecimal() {
	if e.justCalculated || e.display == ErrorDisplay {
		return
	}
	switch {
	case e.current == "" || e.display == "0":
		e.display = "0."
	case !strings.Contains(e.display, ".") && len(e.display) < MaxDisplayLen:
		e.display += "."
	default:
		return
	}
	e.current = e.display
}

func (e *Engine) pressOperator(op string) {
	if e.current == "" {
		return
	}

	if e.operator != "" && e.previous != "" {
		// Fold the pending operation left-to-right before storing the
		// new operator.
		result, ok := evaluate(e.previous, e.operator, e.current)
		if !ok {
			e.fail()
			return
		}
		e.previous = result
		e.display = result
	} else {
		e.previous = e.current
	}

	e.operator = op
	e.current = ""
	e.justCalculated = false
}

func (e *Engine) pressEquals() {
	if e.current == "" || e.operator == "" || e.previous == "" {
		return
	}

	result, ok := evaluate(e.previous, e.operator, e.current)
	if !ok {
		e.fail()
		e.justCalculated = true
		return
	}

	entry := Entry{
		Expression: fmt.Sprintf("%s %s %s", e.previous, e.operator, e.current),
		Result:     result,
		At:         time.Now(),
	}
	e.history = append(e.history, entry)
	if len(e.history) > MaxHistory {
		e.history = e.history[len(e.history)-MaxHistory:]
	}
	if e.OnCalculation != nil {
		e.OnCalculation(entry)
	}

	e.display = result
	e.current = result
	e.previous = ""
	e.operator = ""
	e.justCalculated = true
}

func (e *Engine) pressDelete() {
	if e.display == ErrorDisplay {
		e.Clear()
		return
	}
	if e.justCalculated {
		return // results are not edited character-wise
	}
	if len(e.current) > 1 {
		e.current = e.current[:len(e.current)-1]
		e.display = e.current
		return
	}
	// Single-character or already empty operand: back to zero. Repeated
	// presses stay here.
	e.current = ""
	e.display = "0"
}

func (e *Engine) pressNegate() {
	if e.current == "" || e.current == "0" {
		return
	}
	if strings.HasPrefix(e.current, "-") {
		e.current = e.current[1:]
	} else {
		e.current = "-" + e.current
	}
	e.display = e.current
	e.justCalculated = false
}

func (e *Engine) pressPercent() {
	if e.current == "" {
		return
	}
	n, err := strconv.ParseFloat(e.current, 64)
	if err != nil {
		e.fail()
		return
	}
	e.current = formatResult(n / 100)
	e.display = e.current
	e.justCalculated = false
}

// fail puts the engine into the recoverable error state.
func (e *Engine) fail() {
	e.display = ErrorDisplay
	e.current = ""
	e.previous = ""
	e.operator = ""
}

// evaluate computes one binary operation over decimal operand strings.
// ok is false for division by zero or unparseable operands.
func evaluate(left, op, right string) (result string, ok bool) {
	a, err := strconv.ParseFloat(left, 64)
	if err != nil {
		return "", false
	}
	b, err := strconv.ParseFloat(right, 64)
	if err != nil {
		return "", false
	}

	var r float64
	switch op {
	case "+":
		r = a + b
	case "-":
		r = a - b
	case "×":
		r = a * b
	case "÷":
		if b == 0 {
			return "", false
		}
		r = a / b
	default:
		return "", false
	}

	return formatResult(r), true
}

// formatResult renders a result the way the display expects: scientific
// notation for magnitudes outside [1e-6, 1e9), integers without a decimal
// part, otherwise fixed notation trimmed to at most 8 decimals.
func formatResult(r float64) string {
	abs := math.Abs(r)
	if abs > 999999999 || (abs < 0.000001 && r != 0) {
		return fmt.Sprintf("%.2e", r)
	}
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	s := fmt.Sprintf("%.8f", r)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

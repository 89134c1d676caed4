package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/cartstate/internal/cart"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			status := "ok"
			if !event.OK {
				status = event.ErrCode
			}
			fmt.Fprintf(&buf, "  [%d] %s %s %s total=%s\n", event.Seq, event.Type, event.Key, status, event.Total)
		}
	}
	return buf.String()
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errors = append(errors, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errors
}

func evaluate(result *Result, a Assertion) error {
	s := result.State
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Kind(), Expected: expected, Actual: actual, Trace: result.Trace}
	}

	switch a.Kind() {
	case AssertTotal:
		want, err := decimal.NewFromString(*a.Total)
		if err != nil {
			return fmt.Errorf("total: invalid amount %q", *a.Total)
		}
		if got := cart.Total(s); !got.Equal(want) {
			return fail("total "+want.String(), "total "+got.String())
		}

	case AssertEmpty:
		if got := cart.IsEmpty(s); got != *a.Empty {
			return fail(fmt.Sprintf("empty=%t", *a.Empty), fmt.Sprintf("empty=%t with keys %v", got, s.Keys()))
		}

	case AssertQuantity:
		e, ok := s.Entry(a.Quantity.Key)
		if !ok {
			return fail(fmt.Sprintf("%s quantity %d", a.Quantity.Key, a.Quantity.Equals), "key not in cart")
		}
		if e.Quantity != a.Quantity.Equals {
			return fail(fmt.Sprintf("%s quantity %d", a.Quantity.Key, a.Quantity.Equals), fmt.Sprintf("quantity %d", e.Quantity))
		}

	case AssertAbsent:
		if s.Has(a.Absent) {
			return fail(a.Absent+" absent", "key present")
		}

	case AssertSummary:
		if got := cart.Summary(s); got != *a.Summary {
			return fail(fmt.Sprintf("summary %q", *a.Summary), fmt.Sprintf("summary %q", got))
		}

	case AssertCurrency:
		if got := s.Currency(); got != a.Currency {
			return fail("currency "+a.Currency, "currency "+got)
		}

	case AssertCount:
		if got := s.Len(); got != *a.Count {
			return fail(fmt.Sprintf("%d products", *a.Count), fmt.Sprintf("%d products", got))
		}

	case AssertOrder:
		if got := s.Keys(); !slices.Equal(got, a.Order) {
			return fail(fmt.Sprintf("order %v", a.Order), fmt.Sprintf("order %v", got))
		}

	case AssertMissingPrices:
		if got := cart.MissingPrices(s); !slices.Equal(got, *a.MissingPrices) {
			return fail(fmt.Sprintf("missing prices %v", *a.MissingPrices), fmt.Sprintf("missing prices %v", got))
		}

	default:
		return fmt.Errorf("exactly one assertion type is required")
	}
	return nil
}

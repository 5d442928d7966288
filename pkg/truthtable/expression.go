package truthtable

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTable is returned when an expression is requested from a table
// with no rows.
var ErrEmptyTable = errors.New("truth table has no rows")

// ErrColumnRange is returned for an output column index outside the table.
var ErrColumnRange = errors.New("output column out of range")

// DeriveExpression builds the sum-of-products expression for one output
// column: every row where the output is true becomes a minterm (inputs
// joined with "·", false inputs negated with a trailing "'"), and minterms
// are joined with " + ". An output that is never true yields "0"; one that
// is true on every row yields "1".
func DeriveExpression(table *Table, outputIndex int) (string, error) {
	if table == nil || len(table.Rows) == 0 {
		return "", ErrEmptyTable
	}
	if outputIndex < 0 || outputIndex >= len(table.OutputColumns) {
		return "", fmt.Errorf("%w: %d of %d", ErrColumnRange, outputIndex, len(table.OutputColumns))
	}

	var minterms []string
	for _, row := range table.Rows {
		if outputIndex >= len(row.Outputs) || !row.Outputs[outputIndex] {
			continue
		}
		terms := make([]string, 0, len(row.Inputs))
		for i, v := range row.Inputs {
			if i >= len(table.InputColumns) {
				break
			}
			name := table.InputColumns[i]
			if v {
				terms = append(terms, name)
			} else {
				terms = append(terms, name+"'")
			}
		}
		if len(terms) > 0 {
			minterms = append(minterms, strings.Join(terms, "·"))
		}
	}

	switch len(minterms) {
	case 0:
		return "0", nil
	case len(table.Rows):
		return "1", nil
	default:
		return strings.Join(minterms, " + "), nil
	}
}

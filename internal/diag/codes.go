package diag

// Code is a stable diagnostic identifier, e.g. "P0002". Each family maps to
// a pipeline stage: S=scan, P=parse, L=lint, V=validation.
type Code string

func (c Code) String() string { return string(c) }

const (
	// Scan errors.
	CodeInvalidToken Code = "S0001"

	// Parse errors.
	CodeExtraTokens                  Code = "P0001"
	CodeExpectedExpr                 Code = "P0002"
	CodeMismatchedClosingDelimiter   Code = "P0003"
	CodeIllegalPattern               Code = "P0004"
	CodeIllegalVariable              Code = "P0005"
	CodeUnmatchedClosingDelimiter    Code = "P0006"

	// Lint warnings.
	CodeRedundantNesting      Code = "L0001"
	CodeUnarySeries           Code = "L0002"
	CodeSimilarNames          Code = "L0003"
	CodeHomogeneousAssignment Code = "L0004"

	// Validation errors.
	CodeIncompatibleDefinitions      Code = "V0001"
	CodeMaybeIncompatibleDefinitions Code = "V0002"
)

// Explanation returns a one-line human explanation for a stable code.
func Explanation(code Code) string {
	switch code {
	case CodeInvalidToken:
		return "the scanner encountered a character it does not recognize"
	case CodeExtraTokens:
		return "trailing tokens were found that are not separated from the previous statement by a newline"
	case CodeExpectedExpr:
		return "an expression was expected but the next token cannot start one"
	case CodeMismatchedClosingDelimiter:
		return "a closing delimiter does not match the delimiter that was opened"
	case CodeIllegalPattern:
		return "a pattern sigil ($, #, _) was used where a plain expression was expected"
	case CodeIllegalVariable:
		return "a plain variable was used where a pattern sigil was expected"
	case CodeUnmatchedClosingDelimiter:
		return "a closing delimiter has no matching opening delimiter"
	case CodeRedundantNesting:
		return "two or more parenthesization/bracketing layers wrap the same expression with no effect"
	case CodeUnarySeries:
		return "two or more unary +/- operators are directly nested"
	case CodeSimilarNames:
		return "the same name is used for two different pattern sigils in one rule"
	case CodeHomogeneousAssignment:
		return "a program mixes = and := assignment operators"
	case CodeIncompatibleDefinitions:
		return "a variable is assigned two definitions that can never be equal"
	case CodeMaybeIncompatibleDefinitions:
		return "a variable is assigned two definitions whose equality depends on other variables"
	default:
		return "no explanation registered for this code"
	}
}

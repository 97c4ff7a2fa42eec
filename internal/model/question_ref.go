package model

import (
	"strings"

	"github.com/google/uuid"
)

// generatedPrefix marks attempt-scoped generated question references so
// they can never collide with bank question UUIDs.
const generatedPrefix = "gen_"

// QuestionRef identifies a question inside an attempt. A ref is either
// a bank question id (UUID) or an ephemeral generated-question id.
// Constructors keep the two spaces disjoint; callers branch on
// IsGenerated instead of sniffing UUID shapes.
type QuestionRef string

// BankRef wraps a bank question id.
func BankRef(id string) QuestionRef {
	return QuestionRef(id)
}

// NewGeneratedRef mints a fresh ephemeral reference for a generated
// question embedded in a single attempt.
func NewGeneratedRef() QuestionRef {
	return QuestionRef(generatedPrefix + uuid.NewString())
}

func (r QuestionRef) IsGenerated() bool {
	return strings.HasPrefix(string(r), generatedPrefix)
}

// BankID returns the bank question id and true when the ref is
// bank-sourced.
func (r QuestionRef) BankID() (string, bool) {
	if r.IsGenerated() {
		return "", false
	}
	return string(r), true
}

func (r QuestionRef) String() string {
	return string(r)
}

package engine

import "fmt"

// ValidationError reports malformed run input. It is not retryable: the
// caller must fix the input and resubmit.
type ValidationError struct {
	ItemID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ItemID == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid record %q: %s", e.ItemID, e.Reason)
}

// ConfigurationError reports an invalid form catalog. It is raised when the
// catalog is validated, before any record is processed.
type ConfigurationError struct {
	TypeID string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.TypeID == "" {
		return "invalid form catalog: " + e.Reason
	}
	return fmt.Sprintf("invalid form type %q: %s", e.TypeID, e.Reason)
}

// MissingRuleError is returned in strict mode when an item type has no
// matching unfolding rule.
type MissingRuleError struct {
	ItemID string
	Type   string
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("no unfolding rule for type %q (record %q)", e.Type, e.ItemID)
}

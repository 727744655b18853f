package handlers

import "fmt"

// Field length bounds, matching the stored column contracts.
const (
	maxUsernameLen = 250
	maxEmailLen    = 250
	maxPasswordLen = 100
	maxRoleLen     = 250
	maxTitleLen    = 250
)

// fieldErrors collects every violation per field so a response can report
// all of them at once instead of failing on the first.
type fieldErrors map[string][]string

func (e fieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e fieldErrors) ok() bool {
	return len(e) == 0
}

// checkRequired records a violation when value is empty.
func (e fieldErrors) checkRequired(field, value string) {
	if value == "" {
		e.add(field, "Missing data for required field.")
	}
}

// checkMaxLen records a violation when value exceeds the bound.
func (e fieldErrors) checkMaxLen(field, value string, bound int) {
	if len(value) > bound {
		e.add(field, fmt.Sprintf("Longer than maximum length %d.", bound))
	}
}

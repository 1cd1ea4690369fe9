package models

// ============================================================================
// CATEGORY CONSTANTS
// ============================================================================

// Built-in categories. Free-form categories are allowed everywhere;
// these are the ones offered by default in pickers and stats.
const (
	CategoryGeneral = "general"
	CategoryWork    = "work"
	CategoryLife    = "life"
	CategoryStudy   = "study"
	CategoryHealth  = "health"
)

// BuiltinCategories returns the default category set in display order
func BuiltinCategories() []string {
	return []string{
		CategoryGeneral,
		CategoryWork,
		CategoryLife,
		CategoryStudy,
		CategoryHealth,
	}
}

// ============================================================================
// VALIDATION LIMITS
// ============================================================================

// MaxTitleLength is the maximum length of a task title
const MaxTitleLength = 255

// MaxNotesLength is the maximum length of task notes
const MaxNotesLength = 4000

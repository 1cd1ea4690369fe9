package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error
// reporting across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: store errors, archive errors, or any error that doesn't
	// fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: task ID that doesn't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: corrupt task file, schema validation failures.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty titles, past reminder times, bad time formats.
	ExitValidation = 5
)

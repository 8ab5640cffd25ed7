package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E099)
	// ============================================

	"E002": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed",
		Detail:     "Hooks must be called in the same order on every render.",
		Suggestion: "Call hooks unconditionally at the top of the render function.",
	},

	// ============================================
	// Config and CLI Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"E101": {
		Category:   CategoryCLI,
		Message:    "Unknown demo action",
		Suggestion: "Use inc, dec, add:N, set:N, double or reset.",
	},
	"E102": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

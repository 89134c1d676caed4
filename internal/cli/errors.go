package cli

// Error code constants used in CLIResponse errors by every command.
// Catalog load failures carry the catalog package codes instead.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No catalog or scenario files found
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBadArgument = "E008" // Malformed command argument

	ErrCodeUnknownCurrency = "E201" // Currency code is not ISO 4217
	ErrCodeScenarioFailed  = "E301" // Scenario expect or assertion failed
	ErrCodeTestFailed      = "E_TEST_FAILED"
)

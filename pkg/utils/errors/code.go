package errors

// Service codes (AA)
const (
	// ServiceCommon is for errors shared by all services.
	ServiceCommon = 0

	// ServiceCSV is for the CSV insights service.
	ServiceCSV = 20

	// ServiceImage is for the image proxy service.
	ServiceImage = 21

	// ServiceDocQA is for the document QA service.
	ServiceDocQA = 22

	// ServiceWebQA is for the web QA service.
	ServiceWebQA = 23
)

// Category codes (BB)
const (
	CategorySuccess    = 0
	CategoryRequest    = 1
	CategoryAuth       = 2
	CategoryPermission = 3
	CategoryResource   = 4
	CategoryConflict   = 5
	CategoryRateLimit  = 6
	CategoryInternal   = 7
	CategoryDatabase   = 8
	CategoryCache      = 9
	CategoryNetwork    = 10
	CategoryTimeout    = 11
	CategoryConfig     = 12
)

// MakeCode creates an error code from service, category, and sequence.
// Format: AABBCCC where AA=service, BB=category, CCC=sequence
func MakeCode(service, category, sequence int) int {
	return service*100000 + category*1000 + sequence
}

// ParseCode parses an error code into service, category, and sequence.
func ParseCode(code int) (service, category, sequence int) {
	service = code / 100000
	category = (code % 100000) / 1000
	sequence = code % 1000
	return
}

// GetCategory returns the category code from an error code.
func GetCategory(code int) int {
	return (code % 100000) / 1000
}

// IsClientError checks if the error code indicates a client error (4xx).
func IsClientError(code int) bool {
	category := GetCategory(code)
	return category >= CategoryRequest && category <= CategoryRateLimit
}

// IsUpstreamError checks if the error code blames a dependency.
func IsUpstreamError(code int) bool {
	category := GetCategory(code)
	return category == CategoryNetwork || category == CategoryTimeout
}

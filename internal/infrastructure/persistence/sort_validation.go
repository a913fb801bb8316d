package persistence

import "strings"

// validateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to DESC for anything unrecognized
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist so a
// caller-supplied field never reaches the ORDER BY clause raw
func validateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowed[trimmed] {
		return trimmed
	}
	return defaultField
}

var supplierSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"total_payable": true,
}

var supplySortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"added_date":       true,
	"medicine_name":    true,
	"invoice_due_date": true,
	"payment_status":   true,
}

var paymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"payment_date": true,
	"amount":       true,
	"method":       true,
}

var stockItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"quantity":   true,
}

package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Configuration (T100-T199)
	// ============================================

	"T101": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "The configuration file exists but could not be read or parsed as JSON.",
	},
	"T102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "One or more configuration values failed validation.",
	},
	"T103": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A TECHCORP_ environment variable could not be applied to the configuration.",
	},

	// ============================================
	// Catalog (T200-T299)
	// ============================================

	"T201": {
		Category: CategoryCatalog,
		Message:  "Catalog failed to load",
		Detail:   "The content catalog could not be read or decoded.",
	},
	"T202": {
		Category: CategoryCatalog,
		Message:  "Unknown catalog section",
		Detail:   "Valid sections are products, downloads, videos and faqs.",
	},

	// ============================================
	// Delivery (T300-T399)
	// ============================================

	"T301": {
		Category: CategoryDelivery,
		Message:  "Inbox unavailable",
		Detail:   "The configured inquiry inbox could not be opened.",
	},
	"T302": {
		Category: CategoryDelivery,
		Message:  "Inquiry delivery failed",
		Detail:   "The inbox rejected or did not acknowledge the inquiry.",
	},

	// ============================================
	// HTTP (T400-T499)
	// ============================================

	"T401": {
		Category: CategoryHTTP,
		Message:  "Server failed to start",
		Detail:   "The HTTP listener could not be bound to the configured address.",
	},
	"T402": {
		Category: CategoryHTTP,
		Message:  "Page render failed",
		Detail:   "A page could not be rendered to HTML.",
	},
	"T403": {
		Category: CategoryHTTP,
		Message:  "Too many requests",
		Detail:   "The client exceeded the contact submission rate limit.",
	},
	"T404": {
		Category: CategoryHTTP,
		Message:  "Page not found",
		Detail:   "No route matches the requested path.",
	},
	"T405": {
		Category: CategoryHTTP,
		Message:  "Live channel failed",
		Detail:   "The contact form websocket could not be established or was closed abnormally.",
	},
}

// Codes returns all registered error codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry. It is not safe to
// call concurrently with New.
func Register(code string, template Template) {
	registry[code] = template
}

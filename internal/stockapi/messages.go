package stockapi

import "net/http"

// Messages maps a resource name to its per-status user-facing error messages.
// The "default" entry is the fallback for resources without their own table.
type Messages map[string]map[int]string

// DefaultResource is the Messages key used when a resource has no table of
// its own.
const DefaultResource = "default"

// fallbackMessage covers statuses no table knows about and transport failures
// that never produced a status at all.
const fallbackMessage = "Something unexpected happened. Please try again."

const rateLimitMessage = "Too many requests! You've hit the limit for write actions. " +
	"As this is a portfolio project, I'm limiting the number of requests to prevent " +
	"overloading. Please try again later!"

const serverErrorMessage = "Something went wrong on our end. We're working to fix it."

// DefaultMessages returns the message tables for the resources this app
// talks to, plus the default fallback table.
func DefaultMessages() Messages {
	return Messages{
		ResourceWarehouses: {
			http.StatusBadRequest:          "The warehouse details you submitted were rejected. Please review and try again.",
			http.StatusNotFound:            "Warehouse not found. Please try again.",
			http.StatusTooManyRequests:     rateLimitMessage,
			http.StatusInternalServerError: serverErrorMessage,
		},
		ResourceInventories: {
			http.StatusBadRequest:          "The inventory details you submitted were rejected. Please review and try again.",
			http.StatusNotFound:            "Inventory not found. Please try again.",
			http.StatusTooManyRequests:     rateLimitMessage,
			http.StatusInternalServerError: serverErrorMessage,
		},
		DefaultResource: {
			http.StatusBadRequest:          "The request was rejected by the server. Please review and try again.",
			http.StatusNotFound:            "Sorry, we couldn't find what you were looking for! Please try again.",
			http.StatusTooManyRequests:     rateLimitMessage,
			http.StatusInternalServerError: serverErrorMessage,
		},
	}
}

// resolve picks the user-facing message for a failure on resource with the
// given status. Resources without their own table use the default table;
// statuses missing from both tables get the generic fallback.
func (m Messages) resolve(resource string, status int) string {
	table, ok := m[resource]
	if !ok {
		table = m[DefaultResource]
	}
	if msg, ok := table[status]; ok {
		return msg
	}
	if msg, ok := m[DefaultResource][status]; ok {
		return msg
	}
	return fallbackMessage
}

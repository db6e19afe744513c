package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Prefixes for entity ids.
const (
	PrefixOrganization = "org"
	PrefixUser         = "user"
	PrefixMessage      = "msg"
	PrefixTimeEntry    = "te"
	PrefixActivity     = "act"

	ticketPrefix  = "TKT"
	invoicePrefix = "INV"

	// shortLength is how many hex characters of a random uuid are kept.
	shortLength = 8
)

// New returns "prefix-xxxxxxxx" built from a random uuid.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + raw[:shortLength]
}

func NewOrganizationID() string { return New(PrefixOrganization) }
func NewUserID() string         { return New(PrefixUser) }
func NewMessageID() string      { return New(PrefixMessage) }
func NewTimeEntryID() string    { return New(PrefixTimeEntry) }
func NewActivityID() string     { return New(PrefixActivity) }

// FormatTicketID renders the n-th ticket number, e.g. TKT-007.
func FormatTicketID(n int) string {
	return fmt.Sprintf("%s-%03d", ticketPrefix, n)
}

// FormatInvoiceID renders the n-th invoice number of a year, e.g. INV-2024-003.
func FormatInvoiceID(year, n int) string {
	return fmt.Sprintf("%s-%d-%03d", invoicePrefix, year, n)
}

// TicketSequence extracts the number from a TKT-NNN id.
func TicketSequence(ticketID string) (int, bool) {
	rest, ok := strings.CutPrefix(ticketID, ticketPrefix+"-")
	if !ok {
		return 0, false
	}
	return parsePositive(rest)
}

// InvoiceSequence extracts year and number from an INV-YYYY-NNN id.
func InvoiceSequence(invoiceID string) (year, n int, ok bool) {
	parts := strings.Split(invoiceID, "-")
	if len(parts) != 3 || parts[0] != invoicePrefix {
		return 0, 0, false
	}
	if year, ok = parsePositive(parts[1]); !ok {
		return 0, 0, false
	}
	if n, ok = parsePositive(parts[2]); !ok {
		return 0, 0, false
	}
	return year, n, true
}

func parsePositive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

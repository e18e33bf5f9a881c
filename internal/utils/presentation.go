package utils

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/expense_portal/internal/core/domain"
	"github.com/SscSPs/expense_portal/internal/platform/config"
)

const dateLayout = "02.01.2006"

// FormatDate renders a date as dd.mm.yyyy; a zero time renders as "Няма дата".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return domain.MsgNoDate
	}
	return t.Format(dateLayout)
}

// FormatDatePtr is FormatDate for optional dates.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return domain.MsgNoDate
	}
	return FormatDate(*t)
}

// Badge is the css class and label of a status pill.
type Badge struct {
	Class string
	Text  string
}

var badgeClasses = map[domain.ExpenseStatus]string{
	domain.StatusApproved:     "approved",
	domain.StatusRejected:     "rejected",
	domain.StatusManualReview: "pending",
}

// StatusBadge maps any status to its badge; unknown statuses get the pending badge.
func StatusBadge(status domain.ExpenseStatus) Badge {
	status = domain.NormalizeStatus(status)
	label, _ := config.StatusLabel(string(status))
	return Badge{Class: badgeClasses[status], Text: label}
}

// CategoryLabel returns the display label for a category code.
// Unknown codes are shown as-is; an empty code is "Други".
func CategoryLabel(code string) string {
	if label, ok := config.CategoryLabel(code); ok {
		return label
	}
	if code == "" {
		label, _ := config.CategoryLabel(domain.DefaultCategory)
		return label
	}
	return code
}

// MerchantOrUnknown substitutes a placeholder for an empty merchant.
func MerchantOrUnknown(merchant string) string {
	if strings.TrimSpace(merchant) == "" {
		return domain.MsgUnknownMerchant
	}
	return merchant
}

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*\n]+?)\*`)
)

// ChatMarkup escapes a chat reply and applies the minimal inline markup:
// line breaks, **bold** and *italics*.
func ChatMarkup(text string) template.HTML {
	escaped := html.EscapeString(text)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = italicPattern.ReplaceAllString(escaped, "<em>$1</em>")
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}

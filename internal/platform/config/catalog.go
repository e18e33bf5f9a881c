package config

import (
	"maps"
	"slices"
)

// MaxUploadSize is the largest receipt image accepted (10 MiB).
const MaxUploadSize int64 = 10 * 1024 * 1024

// DefaultCurrency is used when a row or form carries no currency.
const DefaultCurrency = "BGN"

var allowedFileTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"}

// Category codes in the order they are offered on the form.
var categoryOrder = []string{"food", "business_meal", "transport", "travel", "equipment", "training", "cigarettes", "other"}

var categoryLabels = map[string]string{
	"food":          "Храна",
	"business_meal": "Служебен обяд/вечеря",
	"transport":     "Градски транспорт/Такси",
	"travel":        "Командировка",
	"equipment":     "Оборудване",
	"training":      "Обучение/Курсове",
	"cigarettes":    "Цигари",
	"other":         "Други",
}

var statusLabels = map[string]string{
	"Approved":      "Одобрен",
	"Rejected":      "Отказан",
	"Manual Review": "Чака одобрение",
}

// Category is a code/label pair for form selects.
type Category struct {
	Code  string
	Label string
}

// AllowedFileTypes returns the accepted upload MIME types.
func AllowedFileTypes() []string {
	return slices.Clone(allowedFileTypes)
}

// IsAllowedFileType reports whether a MIME type may be uploaded.
func IsAllowedFileType(mimeType string) bool {
	return slices.Contains(allowedFileTypes, mimeType)
}

// CategoryLabels returns a copy of the category code → label map.
func CategoryLabels() map[string]string {
	return maps.Clone(categoryLabels)
}

// CategoryLabel looks up a single category label.
func CategoryLabel(code string) (string, bool) {
	label, ok := categoryLabels[code]
	return label, ok
}

// Categories returns the categories in form order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryOrder))
	for _, code := range categoryOrder {
		out = append(out, Category{Code: code, Label: categoryLabels[code]})
	}
	return out
}

// StatusLabels returns a copy of the status code → label map.
func StatusLabels() map[string]string {
	return maps.Clone(statusLabels)
}

// StatusLabel looks up a single status label.
func StatusLabel(status string) (string, bool) {
	label, ok := statusLabels[status]
	return label, ok
}

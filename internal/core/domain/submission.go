package domain

// InputMode selects which half of the submission form is used.
type InputMode string

const (
	ModeReceipt InputMode = "receipt"
	ModeManual  InputMode = "manual"
)

// ParseInputMode defaults to receipt mode for anything but "manual".
func ParseInputMode(raw string) InputMode {
	if InputMode(raw) == ModeManual {
		return ModeManual
	}
	return ModeReceipt
}

// ReceiptFile is an uploaded receipt image held in memory for one attempt.
type ReceiptFile struct {
	Name        string
	ContentType string // as declared by the browser
	Data        []byte
}

// Size returns the file size in bytes.
func (f *ReceiptFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// ManualEntry is the structured half of the form.
// Amount and Date are kept as typed by the user; they are parsed on validation.
type ManualEntry struct {
	Merchant      string `form:"merchant" validate:"required"`
	ReceiptNumber string `form:"receiptNumber"`
	Date          string `form:"date" validate:"required"`
	Amount        string `form:"amount" validate:"required"`
	Currency      string `form:"currency"`
	Category      string `form:"category" validate:"required"`
	Description   string `form:"description" validate:"required"`
}

// SubmissionDraft is the transient form state for a single submission attempt.
// It is never persisted.
type SubmissionDraft struct {
	Mode    InputMode
	File    *ReceiptFile
	Comment string
	Manual  ManualEntry
}

// HasFile reports whether a non-empty file is attached.
func (d SubmissionDraft) HasFile() bool {
	return d.File != nil && len(d.File.Data) > 0
}

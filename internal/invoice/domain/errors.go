package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("item_not_found")
	ErrInvalidItemID    = errors.New("invalid_item_id")
	ErrInvalidItemField = errors.New("invalid_item_field")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrExportFailed     = errors.New("export_failed")
)

// DialogError is a blocking message shown to the user before an export.
// Key is stable and safe to hand to the UI.
type DialogError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e *DialogError) Error() string {
	return e.Message
}

var (
	ErrMissingIdentity = &DialogError{
		Key:     "missing_identity",
		Message: "Nick and Discord must be filled in before downloading the invoice.",
	}
	ErrNoBillableContent = &DialogError{
		Key:     "no_valid_purchase",
		Message: "Add at least one item with a quantity and price, or select a rank.",
	}
)

// AsDialogError unwraps err into a DialogError when it is one.
func AsDialogError(err error) (*DialogError, bool) {
	var dErr *DialogError
	if errors.As(err, &dErr) && dErr != nil {
		return dErr, true
	}
	return nil, false
}

package domain

import "errors"

var (
	ErrNotFound  = errors.New("reservoir not found")
	ErrInvalidID = errors.New("invalid reservoir id")
)

// FieldError describes a single rejected field on a write.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries all field-level rejections for a write request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "reservoir validation failed"
}

func (e *ValidationError) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

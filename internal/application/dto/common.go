package dto

// ErrorResponse cuerpo de error HTTP con la forma estable
// {success:false, message, errors?} que espera el frontend.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Fail construye un ErrorResponse con success=false.
func Fail(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// FailValidation incluye la lista completa de campos violados.
func FailValidation(fields []string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Code:    "VALIDATION",
		Message: "Validation Error",
		Errors:  fields,
	}
}

// MessageResponse confirmación simple (borrados, health).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Package response holds the JSON envelope used by middleware and the
// auth endpoints. Imported as jsonres at call sites.
package response

type Body struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) Body {
	return Body{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data interface{}) Body {
	return Body{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}

package response

import "net/http"

// AppError 统一错误包装
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误，status 为 0 时按 500 处理
func WrapError(status int, code, message string, err error) *AppError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

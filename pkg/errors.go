package pkg

// AppError is the application-level error carried from use cases up to the
// HTTP layer. Handlers translate domain sentinels into an AppError and emit
// its HTTP representation, so every failure leaves the API as a uniform
// {"error": "..."} body with a meaningful status.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
	HTTPStatus int    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPError is the wire shape of a failed request.
type HTTPError struct {
	Error string `json:"error"`
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Error: e.Message}
}

// NewDomainError wraps an underlying cause.
func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

// NewDomainErrorSimple builds an AppError with no underlying cause.
func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

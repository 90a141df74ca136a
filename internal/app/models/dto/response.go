package dto

// APIResponse is the uniform response envelope. Success mirrors
// whether the status code is below 400.
type APIResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message" example:"Operation completed successfully"`
	Success    bool        `json:"success" example:"true"`
}

// APIErrorResponse is the uniform error envelope. Data is always null
// and Errors carries optional field-level detail.
type APIErrorResponse struct {
	StatusCode int         `json:"statusCode" example:"400"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message" example:"Validation failed"`
	Success    bool        `json:"success" example:"false"`
	Errors     []string    `json:"errors"`
}

// NewAPIResponse creates a success envelope
func NewAPIResponse(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewAPIError creates an error envelope
func NewAPIError(statusCode int, message string, errs ...string) APIErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return APIErrorResponse{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}

// PaginationInfo describes the page window of a list response
type PaginationInfo struct {
	Total int64 `json:"total" example:"42"`
	Page  int   `json:"page" example:"1"`
	Pages int   `json:"pages" example:"5"`
}

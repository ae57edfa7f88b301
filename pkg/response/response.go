package response

// Response is the JSON envelope of every API reply.
type Response struct {
	Status     string `json:"status"` // "success" or "error"
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data,omitempty"`
	Meta       any    `json:"meta,omitempty"`
	Error      string `json:"error,omitempty"`
	// Code is a stable machine-readable error kind, e.g. "invalid_invoice" or "busy".
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success(statusCode int, data any) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Paged wraps a list with its paging metadata.
func Paged(statusCode int, data, meta any) Response {
	r := Success(statusCode, data)
	r.Meta = meta
	return r
}

func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// Fail is Error with a code and optional details.
func Fail(statusCode int, code, err string, details any) Response {
	r := Error(statusCode, err)
	r.Code = code
	r.Details = details
	return r
}

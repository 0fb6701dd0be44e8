package apimodels

const statusFail = "fail"

// Response is the error envelope of every endpoint.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewError(message string) Response {
	return Response{
		Status:  statusFail,
		Message: message,
	}
}

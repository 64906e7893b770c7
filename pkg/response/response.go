package response

const (
	MessageSuccessful = "Successful"
	MessageFailed     = "Failed"
	CodeSuccessful    = "00"
	CodeFailed        = "99"
)

// Envelope is the body shape shared by every endpoint.
type Envelope struct {
	Success         bool   `json:"success"`
	ResponseData    any    `json:"responseData,omitempty"`
	Total           *int64 `json:"total,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
	ResponseMessage string `json:"responseMessage"`
	ResponseCode    string `json:"responseCode"`
}

func Success(data any) Envelope {
	return Envelope{
		Success:         true,
		ResponseData:    data,
		ResponseMessage: MessageSuccessful,
		ResponseCode:    CodeSuccessful,
	}
}

func SuccessWithMessage(message string, data any) Envelope {
	env := Success(data)
	env.Message = message
	return env
}

func List(data any, total int64) Envelope {
	env := Success(data)
	env.Total = &total
	return env
}

func Error(message string) Envelope {
	return Envelope{
		Success:         false,
		Error:           message,
		ResponseMessage: MessageFailed,
		ResponseCode:    CodeFailed,
	}
}

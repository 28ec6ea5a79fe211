package response

type SuccessResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
}

// Success builds the success envelope. A non-string msg is treated as the data itself.
func Success(msg any, data ...any) *SuccessResponse {
	message, ok := msg.(string)
	if !ok {
		return &SuccessResponse{
			Success: true,
			Data:    msg,
		}
	}

	res := &SuccessResponse{
		Success: true,
		Message: &message,
	}
	if len(data) > 0 {
		res.Data = data[0]
	}
	return res
}

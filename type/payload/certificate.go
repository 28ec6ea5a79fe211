package payload

// CreateCertificatePayload is the body of POST /certificates/create.
// Date is already formatted as DD/MM/YYYY by the client, or empty.
type CreateCertificatePayload struct {
	Name   string `json:"name" validate:"required"`
	Course string `json:"course" validate:"required"`
	Date   string `json:"date" validate:"omitempty,datetime=02/01/2006"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

type CreateCertificateResult struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	ViewLink string `json:"viewLink"`
}

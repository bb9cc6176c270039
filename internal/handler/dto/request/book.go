package request

type RegisterBookRequest struct {
	Title       string `json:"title" binding:"required"`
	CallNumber  string `json:"call_number" binding:"required"`
	TotalCopies int32  `json:"total_copies" binding:"required,min=1"`
}

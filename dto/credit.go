package dto

// CreditRequest is the body of POST /api/credit/request.
type CreditRequest struct {
	UserID string `json:"userId" binding:"required" example:"user-42"`
}

// CreditBalance is the data of GET /api/credit.
type CreditBalance struct {
	UserID    string `json:"userId" example:"user-42"`
	Remaining int    `json:"remaining" example:"3"`
}

package models

// SupportTicket is an append-only support request. Tickets carry no
// identity and are never listed back to the user.
type SupportTicket struct {
	Email string `json:"email"`
	Msg   string `json:"msg"`
	Date  string `json:"date"`
}

// Review is an append-only product review. Reviews are global, not linked
// to a user.
type Review struct {
	ProductID string `json:"productId"`
	Review    string `json:"review"`
	Date      string `json:"date"`
}

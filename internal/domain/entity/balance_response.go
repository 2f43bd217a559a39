package entity

// BalanceResponse represents the response for the balance endpoint
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}

// AccountToBalanceResponse converts an Account entity to a BalanceResponse DTO
func AccountToBalanceResponse(account *Account) BalanceResponse {
	return BalanceResponse{
		UserID:  account.UserID,
		Balance: account.GetBalance(),
	}
}

package dto

import "github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"

// BalanceResponse represents the API response for a user's balance
type BalanceResponse = entity.BalanceResponse

// FromAccount converts an account to its balance response
func FromAccount(account *entity.Account) BalanceResponse {
	return entity.AccountToBalanceResponse(account)
}

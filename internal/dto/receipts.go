package dto

import "github.com/884js/freee-line-notifier/internal/core/domain"

// FlaggedDealResponse is one receipt-required deal in the receipts list API.
type FlaggedDealResponse struct {
	ID                  int64    `json:"id"`
	Date                string   `json:"date"`
	URL                 string   `json:"url"`
	Amount              int64    `json:"amount"`
	AccountItemNames    []string `json:"accountItemNames"`
	PaymentDescriptions []string `json:"paymentDescriptions"`
}

// Pagination describes the slice of the full list a response covers.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// ListReceiptsResponse is the receipts list API response body.
type ListReceiptsResponse struct {
	Deals      []FlaggedDealResponse `json:"deals"`
	Pagination Pagination            `json:"pagination"`
}

// ToFlaggedDealResponse maps a domain flagged deal to its API shape.
func ToFlaggedDealResponse(deal domain.FlaggedDeal) FlaggedDealResponse {
	resp := FlaggedDealResponse{
		ID:                  deal.ID,
		Date:                deal.Date,
		URL:                 deal.URL,
		Amount:              deal.Amount,
		AccountItemNames:    deal.AccountItemNames,
		PaymentDescriptions: deal.PaymentDescriptions,
	}
	if resp.AccountItemNames == nil {
		resp.AccountItemNames = []string{}
	}
	if resp.PaymentDescriptions == nil {
		resp.PaymentDescriptions = []string{}
	}
	return resp
}

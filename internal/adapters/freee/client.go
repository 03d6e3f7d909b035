package freee

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/884js/freee-line-notifier/internal/apperrors"
	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsclients "github.com/884js/freee-line-notifier/internal/core/ports/clients"
)

const defaultAPIBaseURL = "https://api.freee.co.jp"

// Client talks to the freee accounting API with a token-refreshing HTTP
// client. It is bound to one company's credentials; see Provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Ensure Client implements the AccountingClient port
var _ portsclients.AccountingClient = (*Client)(nil)

// GetTrialBalance fetches the trial P&L for the requested fiscal scope.
// A 400 from the reports endpoint means the accounting period does not
// exist upstream and is surfaced as apperrors.ErrPeriodNotFound.
func (c *Client) GetTrialBalance(ctx context.Context, q portsclients.TrialBalanceQuery) (*domain.TrialBalance, error) {
	params := url.Values{}
	params.Set("company_id", strconv.FormatInt(q.CompanyID, 10))
	params.Set("fiscal_year", strconv.Itoa(q.FiscalYear))
	if q.EndMonth != 0 {
		params.Set("end_month", strconv.Itoa(q.EndMonth))
	}

	var resp trialBalanceResponse
	if err := c.getJSON(ctx, "/api/1/reports/trial_pl", params, &resp); err != nil {
		return nil, err
	}

	return toDomainTrialBalance(resp), nil
}

// GetDeals fetches the company's deals.
func (c *Client) GetDeals(ctx context.Context, companyID int64) ([]domain.Deal, error) {
	params := url.Values{}
	params.Set("company_id", strconv.FormatInt(companyID, 10))
	params.Set("limit", "100")

	var resp dealsResponse
	if err := c.getJSON(ctx, "/api/1/deals", params, &resp); err != nil {
		return nil, err
	}

	deals := make([]domain.Deal, 0, len(resp.Deals))
	for _, row := range resp.Deals {
		deals = append(deals, toDomainDeal(row))
	}
	return deals, nil
}

// GetWalletTxns fetches the company's wallet transactions.
func (c *Client) GetWalletTxns(ctx context.Context, companyID int64) ([]domain.WalletTxn, error) {
	params := url.Values{}
	params.Set("company_id", strconv.FormatInt(companyID, 10))

	var resp walletTxnsResponse
	if err := c.getJSON(ctx, "/api/1/wallet_txns", params, &resp); err != nil {
		return nil, err
	}

	txns := make([]domain.WalletTxn, 0, len(resp.WalletTxns))
	for _, row := range resp.WalletTxns {
		txns = append(txns, domain.WalletTxn{
			ID:           row.ID,
			Date:         row.Date,
			Amount:       row.Amount,
			WalletableID: row.WalletableID,
			Description:  row.Description,
		})
	}
	return txns, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build freee request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("freee request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("freee %s returned 400: %w", path, apperrors.ErrPeriodNotFound)
	default:
		return fmt.Errorf("freee %s returned unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode freee response: %w", err)
	}
	return nil
}

func toDomainTrialBalance(resp trialBalanceResponse) *domain.TrialBalance {
	if resp.TrialPL == nil {
		return &domain.TrialBalance{}
	}

	balances := make([]domain.BalanceLine, 0, len(resp.TrialPL.Balances))
	for _, row := range resp.TrialPL.Balances {
		line := domain.BalanceLine{
			AccountCategoryName: row.AccountCategoryName,
			TotalLine:           row.TotalLine,
			ClosingBalance:      row.ClosingBalance,
		}
		if row.AccountItemName != nil {
			line.AccountItemName = *row.AccountItemName
		}
		balances = append(balances, line)
	}

	return &domain.TrialBalance{
		TrialPL: &domain.ProfitAndLoss{
			FiscalYear: resp.TrialPL.FiscalYear,
			Balances:   balances,
		},
	}
}

func toDomainDeal(row dealRow) domain.Deal {
	deal := domain.Deal{
		ID:        row.ID,
		IssueDate: row.IssueDate,
		Amount:    row.Amount,
	}
	for _, d := range row.Details {
		deal.Details = append(deal.Details, domain.DealDetail{AccountItemID: d.AccountItemID})
	}
	for _, r := range row.Receipts {
		deal.Receipts = append(deal.Receipts, domain.Receipt{ID: r.ID})
	}
	for _, p := range row.Payments {
		deal.Payments = append(deal.Payments, domain.Payment{
			ID:                 p.ID,
			Date:               p.Date,
			FromWalletableType: p.FromWalletableType,
			FromWalletableID:   p.FromWalletableID,
			Amount:             p.Amount,
		})
	}
	return deal
}

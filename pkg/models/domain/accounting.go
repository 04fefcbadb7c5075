package domain

// Aging report types.
const (
	AgingReceivable = "receivable"
	AgingPayable    = "payable"
)

// Financial statement types.
const (
	StatementBalanceSheet = "balance_sheet"
	StatementProfitLoss   = "profit_loss"
)

// Supported financial ratio names.
const (
	RatioLiquidity     = "liquidity"
	RatioProfitability = "profitability"
	RatioDebt          = "debt"
)

// JournalEntryFilter selects journal entries for a search listing.
type JournalEntryFilter struct {
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	JournalID int64  `json:"journal_id,omitempty"`
	State     string `json:"state,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

func (f *JournalEntryFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// JournalEntryLineCreate is one debit/credit line of a journal entry.
type JournalEntryLineCreate struct {
	AccountID int64   `json:"account_id"`
	PartnerID int64   `json:"partner_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

// JournalEntryCreate carries the data for creating a journal entry. Debits
// and credits must balance; the backend enforces that.
type JournalEntryCreate struct {
	Ref       string                   `json:"ref,omitempty"`
	JournalID int64                    `json:"journal_id"`
	Date      string                   `json:"date,omitempty"`
	Lines     []JournalEntryLineCreate `json:"lines"`
}

// AgingInput parameterises the receivable/payable aging analysis.
type AgingInput struct {
	ReportType string  `json:"report_type"`
	DateTo     string  `json:"date_to"`
	PartnerIDs []int64 `json:"partner_ids,omitempty"`
}

// StatementInput parameterises the balance sheet / profit & loss report.
type StatementInput struct {
	ReportType string `json:"report_type"`
	DateFrom   string `json:"date_from,omitempty"`
	DateTo     string `json:"date_to"`
}

// FinancialRatioInput parameterises the ratio analysis.
type FinancialRatioInput struct {
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to"`
	Ratios   []string `json:"ratios"`
}

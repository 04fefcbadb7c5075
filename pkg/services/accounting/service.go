package accounting

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

const (
	moveModel = "account.move"
	lineModel = "account.move.line"
)

// Account types carried by receivable/payable ledger lines.
const (
	accountTypeReceivable = "asset_receivable"
	accountTypePayable    = "liability_payable"
)

// Service implements the accounting reporting operations.
type Service struct {
	gw odoo.Gateway
}

func NewService(gw odoo.Gateway) *Service {
	return &Service{gw: gw}
}

// SearchJournalEntries lists journal entries matching the filter, with
// pagination metadata from an extra unlimited count call.
func (s *Service) SearchJournalEntries(ctx context.Context, filter domain.JournalEntryFilter) (*domain.SearchResult, error) {
	filter.Normalize()

	d, err := odoo.NewDomain().DateRange("date", "date_from", filter.DateFrom, "date_to", filter.DateTo)
	if err != nil {
		return nil, err
	}
	if filter.JournalID != 0 {
		d = d.With(odoo.Cond("journal_id", odoo.OpEq, filter.JournalID))
	}
	if filter.State != "" {
		d = d.With(odoo.Cond("state", odoo.OpEq, filter.State))
	}

	result, err := s.gw.Fetch(ctx, moveModel, d, odoo.FetchOptions{
		Fields:    []string{"name", "ref", "date", "journal_id", "state", "amount_total", "partner_id"},
		Limit:     filter.Limit,
		Offset:    filter.Offset,
		WithCount: true,
	})
	if err != nil {
		return nil, err
	}

	total := len(result.Records)
	if result.TotalCount != nil {
		total = *result.TotalCount
	}
	return &domain.SearchResult{
		Count:      len(result.Records),
		TotalCount: total,
		Records:    result.Records,
	}, nil
}

// CreateJournalEntry creates a journal entry with its debit/credit lines and
// returns the assigned reference. The backend rejects unbalanced entries.
func (s *Service) CreateJournalEntry(ctx context.Context, entry domain.JournalEntryCreate) (*domain.Created, error) {
	values := map[string]any{
		"journal_id": entry.JournalID,
	}
	if entry.Ref != "" {
		values["ref"] = entry.Ref
	}
	if entry.Date != "" {
		if _, err := odoo.ParseDate("date", entry.Date); err != nil {
			return nil, err
		}
		values["date"] = entry.Date
	}

	lines := make([]any, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		vals := map[string]any{
			"account_id": line.AccountID,
			"debit":      line.Debit,
			"credit":     line.Credit,
		}
		if line.PartnerID != 0 {
			vals["partner_id"] = line.PartnerID
		}
		if line.Name != "" {
			vals["name"] = line.Name
		}
		lines = append(lines, []any{0, 0, vals})
	}
	values["line_ids"] = lines

	id, err := s.gw.Create(ctx, moveModel, values)
	if err != nil {
		return nil, err
	}

	created, err := s.gw.ReadInContext(ctx, moveModel, []int64{id}, []string{"name"}, odoo.ReadContext{})
	if err != nil {
		return nil, err
	}

	name := ""
	if len(created) > 0 {
		name = created[0].Str("name")
	}
	return &domain.Created{ID: id, Name: name}, nil
}

// AnalyzeAging buckets outstanding receivable or payable balances by days
// overdue relative to the report date. Maturity date takes precedence over
// the transaction date when present.
func (s *Service) AnalyzeAging(ctx context.Context, params domain.AgingInput) (*domain.AgingReport, error) {
	var accountType string
	switch params.ReportType {
	case domain.AgingReceivable:
		accountType = accountTypeReceivable
	case domain.AgingPayable:
		accountType = accountTypePayable
	default:
		return nil, odoo.NewValidationError("report_type", params.ReportType,
			"expected receivable or payable")
	}

	dateTo, err := odoo.ParseDate("date_to", params.DateTo)
	if err != nil {
		return nil, err
	}

	d := odoo.NewDomain(
		odoo.Cond("account_id.account_type", odoo.OpEq, accountType),
		odoo.Cond("reconciled", odoo.OpEq, false),
		odoo.Cond("balance", odoo.OpNeq, 0),
		odoo.Cond("date", odoo.OpLte, params.DateTo),
		odoo.Cond("parent_state", odoo.OpEq, "posted"),
	)
	if len(params.PartnerIDs) > 0 {
		d = d.With(odoo.Cond("partner_id", odoo.OpIn, params.PartnerIDs))
	}

	lines, err := s.gw.Fetch(ctx, lineModel, d, odoo.FetchOptions{
		Fields: []string{"partner_id", "balance", "date", "date_maturity", "move_name"},
	})
	if err != nil {
		return nil, err
	}

	report := bucketLines(lines.Records, dateTo)
	report.ReportType = params.ReportType
	report.DateTo = params.DateTo
	return report, nil
}

type agingAcc struct {
	name    string
	buckets [5]decimal.Decimal
	total   decimal.Decimal
}

// bucketLines partitions every line into exactly one of the five aging
// buckets and accumulates absolute balances per partner and globally.
func bucketLines(lines []odoo.Record, dateTo time.Time) *domain.AgingReport {
	byPartner := map[int64]*agingAcc{}
	var globalBuckets [5]decimal.Decimal
	grandTotal := decimal.Zero

	for _, line := range lines {
		rel := line.RelationOrUnknown("partner_id")
		acc, ok := byPartner[rel.ID]
		if !ok {
			acc = &agingAcc{name: rel.Name, total: decimal.Zero}
			for i := range acc.buckets {
				acc.buckets[i] = decimal.Zero
			}
			byPartner[rel.ID] = acc
		}

		bucket := bucketIndex(daysOverdue(line, dateTo))
		amount := line.Amount("balance").Abs()

		acc.buckets[bucket] = acc.buckets[bucket].Add(amount)
		acc.total = acc.total.Add(amount)
		globalBuckets[bucket] = globalBuckets[bucket].Add(amount)
		grandTotal = grandTotal.Add(amount)
	}

	partners := make([]domain.PartnerAging, 0, len(byPartner))
	for id, acc := range byPartner {
		partners = append(partners, domain.PartnerAging{
			ID:      id,
			Name:    acc.name,
			Buckets: toBucketTotals(acc.buckets),
			Total:   acc.total.InexactFloat64(),
		})
	}
	sort.Slice(partners, func(i, j int) bool { return partners[i].Total > partners[j].Total })

	return &domain.AgingReport{
		Partners:   partners,
		Totals:     toBucketTotals(globalBuckets),
		GrandTotal: grandTotal.InexactFloat64(),
	}
}

// daysOverdue counts days between the report date and the line's due date;
// the maturity date wins over the transaction date when set.
func daysOverdue(line odoo.Record, dateTo time.Time) int {
	due, ok := line.Date("date_maturity")
	if !ok {
		due, ok = line.Date("date")
		if !ok {
			return 0
		}
	}
	return int(dateTo.Sub(due).Hours() / 24)
}

// bucketIndex assigns a days-overdue value to one of the five fixed windows.
func bucketIndex(days int) int {
	switch {
	case days <= 0:
		return 0
	case days <= 30:
		return 1
	case days <= 60:
		return 2
	case days <= 90:
		return 3
	default:
		return 4
	}
}

func toBucketTotals(buckets [5]decimal.Decimal) domain.BucketTotals {
	return domain.BucketTotals{
		NotDue:     buckets[0].InexactFloat64(),
		Days1To30:  buckets[1].InexactFloat64(),
		Days31To60: buckets[2].InexactFloat64(),
		Days61To90: buckets[3].InexactFloat64(),
		Days91Plus: buckets[4].InexactFloat64(),
	}
}

// GetStatement produces a balance sheet as of date_to or a profit & loss
// statement over the window, grouped by account.
func (s *Service) GetStatement(ctx context.Context, params domain.StatementInput) (any, error) {
	if _, err := odoo.ParseDate("date_to", params.DateTo); err != nil {
		return nil, err
	}
	if params.DateFrom != "" {
		if _, err := odoo.ParseDate("date_from", params.DateFrom); err != nil {
			return nil, err
		}
	}

	switch params.ReportType {
	case domain.StatementBalanceSheet:
		return s.balanceSheet(ctx, params)
	case domain.StatementProfitLoss:
		return s.profitLoss(ctx, params)
	default:
		return nil, odoo.NewValidationError("report_type", params.ReportType,
			"expected balance_sheet or profit_loss")
	}
}

func (s *Service) balanceSheet(ctx context.Context, params domain.StatementInput) (*domain.BalanceSheet, error) {
	assets, err := s.groupSection(ctx, "asset", "", params.DateTo)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.groupSection(ctx, "liability", "", params.DateTo)
	if err != nil {
		return nil, err
	}
	equity, err := s.groupSection(ctx, "equity", "", params.DateTo)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceSheet{
		DateTo:      params.DateTo,
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
	}, nil
}

func (s *Service) profitLoss(ctx context.Context, params domain.StatementInput) (*domain.ProfitLoss, error) {
	income, err := s.groupSection(ctx, "income", params.DateFrom, params.DateTo)
	if err != nil {
		return nil, err
	}
	expense, err := s.groupSection(ctx, "expense", params.DateFrom, params.DateTo)
	if err != nil {
		return nil, err
	}

	net := decimal.NewFromFloat(income.Total).Sub(decimal.NewFromFloat(expense.Total))
	return &domain.ProfitLoss{
		Period:    domain.Period{From: params.DateFrom, To: params.DateTo},
		Income:    income,
		Expense:   expense,
		NetResult: net.InexactFloat64(),
	}, nil
}

// groupSection fetches posted ledger lines for one internal group and sums
// absolute balances overall and per referenced account.
func (s *Service) groupSection(ctx context.Context, internalGroup, dateFrom, dateTo string) (domain.StatementSection, error) {
	d := odoo.NewDomain(
		odoo.Cond("account_id.internal_group", odoo.OpEq, internalGroup),
		odoo.Cond("parent_state", odoo.OpEq, "posted"),
	)
	if dateFrom != "" {
		d = d.With(odoo.Cond("date", odoo.OpGte, dateFrom))
	}
	d = d.With(odoo.Cond("date", odoo.OpLte, dateTo))

	lines, err := s.gw.Fetch(ctx, lineModel, d, odoo.FetchOptions{
		Fields: []string{"account_id", "balance"},
	})
	if err != nil {
		return domain.StatementSection{}, err
	}

	type acc struct {
		name    string
		balance decimal.Decimal
	}
	byAccount := map[int64]*acc{}
	total := decimal.Zero

	for _, line := range lines.Records {
		rel := line.RelationOrUnknown("account_id")
		a, ok := byAccount[rel.ID]
		if !ok {
			a = &acc{name: rel.Name, balance: decimal.Zero}
			byAccount[rel.ID] = a
		}
		balance := line.Amount("balance").Abs()
		a.balance = a.balance.Add(balance)
		total = total.Add(balance)
	}

	accounts := make([]domain.AccountTotal, 0, len(byAccount))
	for id, a := range byAccount {
		accounts = append(accounts, domain.AccountTotal{
			ID:      id,
			Name:    a.name,
			Balance: a.balance.InexactFloat64(),
		})
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Balance > accounts[j].Balance })

	return domain.StatementSection{
		Total:    total.InexactFloat64(),
		Accounts: accounts,
	}, nil
}

// AnalyzeRatios computes the requested financial ratios from the statement
// sums. Every ratio is exactly zero on a non-positive denominator.
func (s *Service) AnalyzeRatios(ctx context.Context, params domain.FinancialRatioInput) (*domain.RatioReport, error) {
	if _, err := odoo.ParseDate("date_from", params.DateFrom); err != nil {
		return nil, err
	}
	if _, err := odoo.ParseDate("date_to", params.DateTo); err != nil {
		return nil, err
	}
	for _, name := range params.Ratios {
		switch name {
		case domain.RatioLiquidity, domain.RatioProfitability, domain.RatioDebt:
		default:
			return nil, odoo.NewValidationError("ratios", name,
				"expected one of liquidity, profitability, debt")
		}
	}
	if len(params.Ratios) == 0 {
		params.Ratios = []string{domain.RatioLiquidity, domain.RatioProfitability, domain.RatioDebt}
	}

	ratios := make(map[string]float64, len(params.Ratios))
	var assets, liabilities, income, expense decimal.Decimal
	var haveBalance, haveResult bool

	for _, name := range params.Ratios {
		switch name {
		case domain.RatioLiquidity, domain.RatioDebt:
			if !haveBalance {
				a, err := s.groupSection(ctx, "asset", "", params.DateTo)
				if err != nil {
					return nil, err
				}
				l, err := s.groupSection(ctx, "liability", "", params.DateTo)
				if err != nil {
					return nil, err
				}
				assets = decimal.NewFromFloat(a.Total)
				liabilities = decimal.NewFromFloat(l.Total)
				haveBalance = true
			}
		case domain.RatioProfitability:
			if !haveResult {
				i, err := s.groupSection(ctx, "income", params.DateFrom, params.DateTo)
				if err != nil {
					return nil, err
				}
				e, err := s.groupSection(ctx, "expense", params.DateFrom, params.DateTo)
				if err != nil {
					return nil, err
				}
				income = decimal.NewFromFloat(i.Total)
				expense = decimal.NewFromFloat(e.Total)
				haveResult = true
			}
		}
	}

	for _, name := range params.Ratios {
		switch name {
		case domain.RatioLiquidity:
			ratios[name] = safeRatio(assets, liabilities)
		case domain.RatioDebt:
			ratios[name] = safeRatio(liabilities, assets)
		case domain.RatioProfitability:
			ratios[name] = safeRatio(income.Sub(expense), income)
		}
	}

	return &domain.RatioReport{
		Period: domain.Period{From: params.DateFrom, To: params.DateTo},
		Ratios: ratios,
	}, nil
}

func safeRatio(numerator, denominator decimal.Decimal) float64 {
	if denominator.Sign() <= 0 {
		return 0
	}
	return numerator.Div(denominator).Round(2).InexactFloat64()
}

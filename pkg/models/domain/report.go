package domain

import "github.com/erptools/odoo-insight/pkg/store/odoo"

// Period is the analysed date window, echoed back in every report.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
	Days int    `json:"days,omitempty"`
}

// SearchResult is the listing payload shared by every search operation.
type SearchResult struct {
	Count      int           `json:"count"`
	TotalCount int           `json:"total_count"`
	Records    []odoo.Record `json:"records"`
}

// Created reports a successfully created backend record.
type Created struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PreviousPeriod summarises the immediately preceding window of identical
// length used for period-over-period comparison.
type PreviousPeriod struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	OrderCount  int     `json:"order_count"`
	TotalAmount float64 `json:"total_amount"`
}

// PerformanceSummary compares the current window against the previous one.
type PerformanceSummary struct {
	OrderCount     int            `json:"order_count"`
	TotalAmount    float64        `json:"total_amount"`
	PreviousPeriod PreviousPeriod `json:"previous_period"`
	PercentChange  float64        `json:"percent_change"`
}

// ProductGroup is the per-product accumulator of the grouping roll-up.
type ProductGroup struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// PartyGroup is the per-customer / per-salesperson accumulator.
type PartyGroup struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	OrderCount int     `json:"order_count"`
	Amount     float64 `json:"amount"`
}

// GroupedData holds at most one populated grouping, matching the requested
// group_by dimension.
type GroupedData struct {
	Products     []ProductGroup `json:"products,omitempty"`
	Customers    []PartyGroup   `json:"customers,omitempty"`
	Salespersons []PartyGroup   `json:"salespersons,omitempty"`
}

// SalesPerformance is the period-over-period sales report.
type SalesPerformance struct {
	Period      Period             `json:"period"`
	Summary     PerformanceSummary `json:"summary"`
	GroupedData *GroupedData       `json:"grouped_data,omitempty"`
}

// SupplierStats aggregates one supplier's orders and delivery punctuality.
type SupplierStats struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OrderCount   int     `json:"order_count"`
	TotalAmount  float64 `json:"total_amount"`
	OnTimeCount  int     `json:"on_time_delivery_count"`
	LateCount    int     `json:"late_delivery_count"`
	AvgDelayDays float64 `json:"avg_delay_days"`
	OnTimeRate   float64 `json:"on_time_delivery_rate"`

	delays []int
}

// AddDelay records one delivery delay observation (in days) for the supplier.
func (s *SupplierStats) AddDelay(days int) {
	s.delays = append(s.delays, days)
	if days <= 0 {
		s.OnTimeCount++
	} else {
		s.LateCount++
	}
}

// FinishDelays folds the recorded observations into the average delay and the
// on-time rate.
func (s *SupplierStats) FinishDelays() {
	if len(s.delays) == 0 {
		return
	}
	sum := 0
	for _, d := range s.delays {
		sum += d
	}
	s.AvgDelayDays = float64(sum) / float64(len(s.delays))
	s.OnTimeRate = float64(s.OnTimeCount) / float64(len(s.delays)) * 100
	s.delays = nil
}

// SupplierPerformanceSummary totals the supplier delivery report.
type SupplierPerformanceSummary struct {
	SupplierCount int     `json:"supplier_count"`
	OrderCount    int     `json:"order_count"`
	TotalAmount   float64 `json:"total_amount"`
}

// SupplierPerformance is the supplier delivery report.
type SupplierPerformance struct {
	Period    Period                     `json:"period"`
	Summary   SupplierPerformanceSummary `json:"summary"`
	Suppliers []SupplierStats            `json:"suppliers"`
}

// ProductAvailability reports the stock position of a single product.
// Error carries a per-product read failure without failing the whole report.
type ProductAvailability struct {
	Name             string  `json:"name"`
	QtyAvailable     float64 `json:"qty_available"`
	VirtualAvailable float64 `json:"virtual_available"`
	IncomingQty      float64 `json:"incoming_qty"`
	OutgoingQty      float64 `json:"outgoing_qty"`
	Error            string  `json:"error,omitempty"`
}

// LocationInfo identifies the stock location a report was scoped to.
type LocationInfo struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CompleteName string `json:"complete_name,omitempty"`
}

// AvailabilityReport maps product ids to their stock position.
type AvailabilityReport struct {
	Products map[int64]ProductAvailability `json:"products"`
	Location *LocationInfo                 `json:"location,omitempty"`
}

// AdjustmentResult reports a validated inventory correction. Exactly one of
// InventoryID/QuantIDs is set depending on which backend flow applied.
type AdjustmentResult struct {
	InventoryID int64   `json:"inventory_id,omitempty"`
	QuantIDs    []int64 `json:"quant_ids,omitempty"`
	Name        string  `json:"name"`
}

// ProductTurnover holds the per-product turnover metrics.
type ProductTurnover struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	DefaultCode       string  `json:"default_code,omitempty"`
	Category          string  `json:"category"`
	COGS              float64 `json:"cogs"`
	AvgInventoryValue float64 `json:"avg_inventory_value"`
	TurnoverRatio     float64 `json:"turnover_ratio"`
	DaysInventory     float64 `json:"days_inventory"`
}

// TurnoverSummary totals the turnover analysis across all products in scope.
// The overall ratio is computed over the summed COGS and summed average
// values, not as an average of per-product ratios.
type TurnoverSummary struct {
	ProductCount         int     `json:"product_count"`
	TotalCOGS            float64 `json:"total_cogs"`
	TotalAvgValue        float64 `json:"total_avg_inventory_value"`
	OverallTurnoverRatio float64 `json:"overall_turnover_ratio"`
	OverallDaysInventory float64 `json:"overall_days_inventory"`
}

// TurnoverReport is the inventory turnover analysis.
type TurnoverReport struct {
	Period   Period            `json:"period"`
	Summary  TurnoverSummary   `json:"summary"`
	Products []ProductTurnover `json:"products"`
}

// BucketTotals is the fixed aging bucket set. Every matched line lands in
// exactly one bucket.
type BucketTotals struct {
	NotDue     float64 `json:"not_due"`
	Days1To30  float64 `json:"1_30"`
	Days31To60 float64 `json:"31_60"`
	Days61To90 float64 `json:"61_90"`
	Days91Plus float64 `json:"91_plus"`
}

// PartnerAging is one partner's outstanding balance split across buckets.
type PartnerAging struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Buckets BucketTotals `json:"buckets"`
	Total   float64      `json:"total"`
}

// AgingReport is the receivable/payable aging analysis.
type AgingReport struct {
	ReportType string         `json:"report_type"`
	DateTo     string         `json:"date_to"`
	Partners   []PartnerAging `json:"partners"`
	Totals     BucketTotals   `json:"totals"`
	GrandTotal float64        `json:"grand_total"`
}

// AccountTotal is one account's accumulated balance within a statement section.
type AccountTotal struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// StatementSection groups ledger balances under one internal group.
type StatementSection struct {
	Total    float64        `json:"total"`
	Accounts []AccountTotal `json:"accounts"`
}

// BalanceSheet is the asset/liability/equity statement as of a date.
type BalanceSheet struct {
	DateTo      string           `json:"date_to"`
	Assets      StatementSection `json:"assets"`
	Liabilities StatementSection `json:"liabilities"`
	Equity      StatementSection `json:"equity"`
}

// ProfitLoss is the income/expense statement over a window.
type ProfitLoss struct {
	Period    Period           `json:"period"`
	Income    StatementSection `json:"income"`
	Expense   StatementSection `json:"expense"`
	NetResult float64          `json:"net_result"`
}

// RatioReport carries the requested financial ratios.
type RatioReport struct {
	Period Period             `json:"period"`
	Ratios map[string]float64 `json:"ratios"`
}

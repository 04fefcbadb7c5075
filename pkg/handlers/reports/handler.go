package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/erptools/odoo-insight/pkg/models/api"
	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/services/accounting"
	"github.com/erptools/odoo-insight/pkg/services/hr"
	"github.com/erptools/odoo-insight/pkg/services/inventory"
	"github.com/erptools/odoo-insight/pkg/services/purchase"
	"github.com/erptools/odoo-insight/pkg/services/sales"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

type Handler struct {
	sales      *sales.Service
	purchase   *purchase.Service
	inventory  *inventory.Service
	accounting *accounting.Service
	hr         *hr.Service
}

func NewHandler(
	salesSvc *sales.Service,
	purchaseSvc *purchase.Service,
	inventorySvc *inventory.Service,
	accountingSvc *accounting.Service,
	hrSvc *hr.Service,
) *Handler {
	return &Handler{
		sales:      salesSvc,
		purchase:   purchaseSvc,
		inventory:  inventorySvc,
		accounting: accountingSvc,
		hr:         hrSvc,
	}
}

func (h *Handler) SearchSalesOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := salesFilterFromQuery(r)
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.sales.SearchOrders(r.Context(), filter)
	respond(w, r, result, err)
}

func (h *Handler) CreateSalesOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.SalesOrderCreate
	if err := decodeBody(r, &order); err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.sales.CreateOrder(r.Context(), order)
	respond(w, r, result, err)
}

func (h *Handler) SalesPerformance(w http.ResponseWriter, r *http.Request) {
	params := domain.SalesPerformanceInput{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		GroupBy:  r.URL.Query().Get("group_by"),
	}
	result, err := h.sales.AnalyzePerformance(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) SearchPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := purchaseFilterFromQuery(r)
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.purchase.SearchOrders(r.Context(), filter)
	respond(w, r, result, err)
}

func (h *Handler) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.PurchaseOrderCreate
	if err := decodeBody(r, &order); err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.purchase.CreateOrder(r.Context(), order)
	respond(w, r, result, err)
}

func (h *Handler) SupplierPerformance(w http.ResponseWriter, r *http.Request) {
	supplierIDs, err := queryIDList(r, "supplier_ids")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	params := domain.SupplierPerformanceInput{
		DateFrom:    r.URL.Query().Get("date_from"),
		DateTo:      r.URL.Query().Get("date_to"),
		SupplierIDs: supplierIDs,
	}
	result, err := h.purchase.AnalyzeSupplierPerformance(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) ProductAvailability(w http.ResponseWriter, r *http.Request) {
	productIDs, err := queryIDList(r, "product_ids")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	locationID, err := queryInt64(r, "location_id")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	params := domain.ProductAvailabilityInput{ProductIDs: productIDs, LocationID: locationID}
	result, err := h.inventory.CheckAvailability(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) CreateInventoryAdjustment(w http.ResponseWriter, r *http.Request) {
	var adjustment domain.InventoryAdjustmentCreate
	if err := decodeBody(r, &adjustment); err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.inventory.CreateAdjustment(r.Context(), adjustment)
	respond(w, r, result, err)
}

func (h *Handler) InventoryTurnover(w http.ResponseWriter, r *http.Request) {
	productIDs, err := queryIDList(r, "product_ids")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	categoryID, err := queryInt64(r, "category_id")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	params := domain.InventoryTurnoverInput{
		DateFrom:   r.URL.Query().Get("date_from"),
		DateTo:     r.URL.Query().Get("date_to"),
		ProductIDs: productIDs,
		CategoryID: categoryID,
	}
	result, err := h.inventory.AnalyzeTurnover(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) SearchJournalEntries(w http.ResponseWriter, r *http.Request) {
	journalID, err := queryInt64(r, "journal_id")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	limit, offset, err := pagination(r)
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	filter := domain.JournalEntryFilter{
		DateFrom:  r.URL.Query().Get("date_from"),
		DateTo:    r.URL.Query().Get("date_to"),
		JournalID: journalID,
		State:     r.URL.Query().Get("state"),
		Limit:     limit,
		Offset:    offset,
	}
	result, err := h.accounting.SearchJournalEntries(r.Context(), filter)
	respond(w, r, result, err)
}

func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var entry domain.JournalEntryCreate
	if err := decodeBody(r, &entry); err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.accounting.CreateJournalEntry(r.Context(), entry)
	respond(w, r, result, err)
}

func (h *Handler) Aging(w http.ResponseWriter, r *http.Request) {
	partnerIDs, err := queryIDList(r, "partner_ids")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	params := domain.AgingInput{
		ReportType: r.URL.Query().Get("report_type"),
		DateTo:     r.URL.Query().Get("date_to"),
		PartnerIDs: partnerIDs,
	}
	result, err := h.accounting.AnalyzeAging(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	params := domain.StatementInput{
		ReportType: r.URL.Query().Get("report_type"),
		DateFrom:   r.URL.Query().Get("date_from"),
		DateTo:     r.URL.Query().Get("date_to"),
	}
	result, err := h.accounting.GetStatement(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) Ratios(w http.ResponseWriter, r *http.Request) {
	params := domain.FinancialRatioInput{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}
	if ratios := r.URL.Query().Get("ratios"); ratios != "" {
		params.Ratios = strings.Split(ratios, ",")
	}
	result, err := h.accounting.AnalyzeRatios(r.Context(), params)
	respond(w, r, result, err)
}

func (h *Handler) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	limit, _, err := pagination(r)
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	result, err := h.hr.SearchEmployees(r.Context(), r.URL.Query().Get("name"), limit)
	respond(w, r, result, err)
}

func (h *Handler) SearchHolidays(w http.ResponseWriter, r *http.Request) {
	employeeID, err := queryInt64(r, "employee_id")
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	params := domain.HolidaySearchInput{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		EmployeeID: employeeID,
	}
	result, err := h.hr.SearchHolidays(r.Context(), params)
	respond(w, r, result, err)
}

func salesFilterFromQuery(r *http.Request) (domain.SalesOrderFilter, error) {
	partnerID, err := queryInt64(r, "partner_id")
	if err != nil {
		return domain.SalesOrderFilter{}, err
	}
	limit, offset, err := pagination(r)
	if err != nil {
		return domain.SalesOrderFilter{}, err
	}
	return domain.SalesOrderFilter{
		PartnerID: partnerID,
		DateFrom:  r.URL.Query().Get("date_from"),
		DateTo:    r.URL.Query().Get("date_to"),
		State:     r.URL.Query().Get("state"),
		Limit:     limit,
		Offset:    offset,
		Order:     r.URL.Query().Get("order"),
	}, nil
}

func purchaseFilterFromQuery(r *http.Request) (domain.PurchaseOrderFilter, error) {
	partnerID, err := queryInt64(r, "partner_id")
	if err != nil {
		return domain.PurchaseOrderFilter{}, err
	}
	limit, offset, err := pagination(r)
	if err != nil {
		return domain.PurchaseOrderFilter{}, err
	}
	return domain.PurchaseOrderFilter{
		PartnerID: partnerID,
		DateFrom:  r.URL.Query().Get("date_from"),
		DateTo:    r.URL.Query().Get("date_to"),
		State:     r.URL.Query().Get("state"),
		Limit:     limit,
		Offset:    offset,
		Order:     r.URL.Query().Get("order"),
	}, nil
}

// queryInt64 parses an optional numeric identifier. Malformed values fail
// before any remote call is made.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, odoo.NewValidationError(name, raw, "expected an integer")
	}
	return value, nil
}

func queryIDList(r *http.Request, name string) ([]int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, odoo.NewValidationError(name, raw, "expected a comma-separated list of integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pagination(r *http.Request) (limit, offset int, err error) {
	parse := func(name string) (int, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return 0, nil
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return 0, odoo.NewValidationError(name, raw, "expected an integer")
		}
		return value, nil
	}
	if limit, err = parse("limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = parse("offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func decodeBody(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return odoo.NewValidationError("body", "", "malformed JSON request body")
	}
	return nil
}

// respond writes the uniform envelope; the status code mirrors the error
// taxonomy so HTTP clients can distinguish bad input from backend failures.
func respond(w http.ResponseWriter, r *http.Request, result any, err error) {
	env := api.Success(result)
	status := http.StatusOK

	if err != nil {
		env = api.Failure(err.Error())
		var validationErr *odoo.ValidationError
		var remoteErr *odoo.RemoteCallError
		switch {
		case errors.As(err, &validationErr):
			status = http.StatusBadRequest
		case errors.As(err, &remoteErr):
			status = http.StatusBadGateway
		default:
			status = http.StatusInternalServerError
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(env); encodeErr != nil {
		zerolog.Ctx(r.Context()).Error().Err(encodeErr).Msg("failed to encode response")
	}
}

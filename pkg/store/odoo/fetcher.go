package odoo

import (
	"context"
	"time"
)

// FetchOptions controls projection and pagination for one fetch. WithCount
// requests the extra unlimited count call used by search listings; analytics
// fetches leave it unset.
type FetchOptions struct {
	Fields    []string
	Limit     int
	Offset    int
	Order     string
	WithCount bool
}

// FetchResult carries one raw record batch. TotalCount is only populated when
// the fetch was made with WithCount.
type FetchResult struct {
	Records    []Record
	TotalCount *int
}

// ReadContext is the closed set of backend context overrides a read may carry.
// Zero values mean the override is absent.
type ReadContext struct {
	// AsOf asks for field values as of a past date (valuation, quantities).
	AsOf time.Time
	// LocationID scopes quantity fields to a single stock location.
	LocationID int64
}

func (rc ReadContext) kwargs() map[string]any {
	overrides := map[string]any{}
	if !rc.AsOf.IsZero() {
		overrides["to_date"] = rc.AsOf.Format(DateLayout)
	}
	if rc.LocationID != 0 {
		overrides["location"] = rc.LocationID
	}
	if len(overrides) == 0 {
		return nil
	}
	return map[string]any{"context": overrides}
}

// Gateway is the record-fetching surface the aggregation services consume.
type Gateway interface {
	Fetch(ctx context.Context, model string, domain Domain, opts FetchOptions) (FetchResult, error)
	ReadInContext(ctx context.Context, model string, ids []int64, fields []string, rc ReadContext) ([]Record, error)
	Create(ctx context.Context, model string, values map[string]any) (int64, error)
	Write(ctx context.Context, model string, ids []int64, values map[string]any) error
	Call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error)
	ModelExists(ctx context.Context, model string) (bool, error)
	ModelFields(ctx context.Context, model string) (map[string]FieldMeta, error)
}

// Fetcher adapts the raw Client to the Gateway contract. Every backend
// failure is wrapped into a RemoteCallError and aborts the whole request;
// there are no retries and no partial results.
type Fetcher struct {
	client Client
}

func NewFetcher(client Client) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, model string, domain Domain, opts FetchOptions) (FetchResult, error) {
	records, err := f.client.SearchRead(ctx, model, domain, opts.Fields, opts.Limit, opts.Offset, opts.Order)
	if err != nil {
		return FetchResult{}, &RemoteCallError{Model: model, Method: "search_read", Err: err}
	}

	result := FetchResult{Records: records}
	if opts.WithCount {
		raw, err := f.client.Execute(ctx, model, "search_count", []any{domain}, nil)
		if err != nil {
			return FetchResult{}, &RemoteCallError{Model: model, Method: "search_count", Err: err}
		}
		total := int(asInt(raw))
		result.TotalCount = &total
	}
	return result, nil
}

func (f *Fetcher) ReadInContext(ctx context.Context, model string, ids []int64, fields []string, rc ReadContext) ([]Record, error) {
	kwargs := rc.kwargs()
	if kwargs == nil {
		records, err := f.client.ReadRecords(ctx, model, ids, fields)
		if err != nil {
			return nil, &RemoteCallError{Model: model, Method: "read", Err: err}
		}
		return records, nil
	}

	if len(fields) > 0 {
		kwargs["fields"] = fields
	}
	raw, err := f.client.Execute(ctx, model, "read", []any{ids}, kwargs)
	if err != nil {
		return nil, &RemoteCallError{Model: model, Method: "read", Err: err}
	}
	return decodeRecords(raw), nil
}

func (f *Fetcher) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	raw, err := f.client.Execute(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, &RemoteCallError{Model: model, Method: "create", Err: err}
	}
	return asInt(raw), nil
}

func (f *Fetcher) Write(ctx context.Context, model string, ids []int64, values map[string]any) error {
	if _, err := f.client.Execute(ctx, model, "write", []any{ids, values}, nil); err != nil {
		return &RemoteCallError{Model: model, Method: "write", Err: err}
	}
	return nil
}

func (f *Fetcher) Call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (any, error) {
	raw, err := f.client.Execute(ctx, model, method, args, kwargs)
	if err != nil {
		return nil, &RemoteCallError{Model: model, Method: method, Err: err}
	}
	return raw, nil
}

// ModelExists probes the model registry once per request; capability-dependent
// flows thread the result through as a parameter instead of re-probing.
func (f *Fetcher) ModelExists(ctx context.Context, model string) (bool, error) {
	domain := NewDomain(Cond("model", OpEq, model))
	raw, err := f.client.Execute(ctx, "ir.model", "search_count", []any{domain}, nil)
	if err != nil {
		return false, &RemoteCallError{Model: "ir.model", Method: "search_count", Err: err}
	}
	return asInt(raw) > 0, nil
}

func (f *Fetcher) ModelFields(ctx context.Context, model string) (map[string]FieldMeta, error) {
	fields, err := f.client.GetModelFields(ctx, model)
	if err != nil {
		return nil, &RemoteCallError{Model: model, Method: "fields_get", Err: err}
	}
	return fields, nil
}

func decodeRecords(raw any) []Record {
	rows, ok := raw.([]any)
	if !ok {
		return nil
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records
}

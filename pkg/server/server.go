package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/erptools/odoo-insight/pkg/handlers/reports"
	insightmiddleware "github.com/erptools/odoo-insight/pkg/server/middleware"
	"github.com/erptools/odoo-insight/pkg/services/accounting"
	"github.com/erptools/odoo-insight/pkg/services/hr"
	"github.com/erptools/odoo-insight/pkg/services/inventory"
	"github.com/erptools/odoo-insight/pkg/services/purchase"
	"github.com/erptools/odoo-insight/pkg/services/sales"
)

type Dependencies struct {
	Sales      *sales.Service
	Purchase   *purchase.Service
	Inventory  *inventory.Service
	Accounting *accounting.Service
	HR         *hr.Service
	Logger     zerolog.Logger
}

type Config struct {
	Addr         string
	Dependencies Dependencies
}

// ConfigureRouter wires the report endpoints under /api/v1.
func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	handler := handlers.NewHandler(deps.Sales, deps.Purchase, deps.Inventory, deps.Accounting, deps.HR)

	router := chi.NewRouter()
	router.Use(insightmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/sales/orders", handler.SearchSalesOrders)
		r.Post("/sales/orders", handler.CreateSalesOrder)
		r.Get("/sales/performance", handler.SalesPerformance)

		r.Get("/purchase/orders", handler.SearchPurchaseOrders)
		r.Post("/purchase/orders", handler.CreatePurchaseOrder)
		r.Get("/purchase/suppliers/performance", handler.SupplierPerformance)

		r.Get("/inventory/availability", handler.ProductAvailability)
		r.Get("/inventory/turnover", handler.InventoryTurnover)
		r.Post("/inventory/adjustments", handler.CreateInventoryAdjustment)

		r.Get("/accounting/journal-entries", handler.SearchJournalEntries)
		r.Post("/accounting/journal-entries", handler.CreateJournalEntry)
		r.Get("/accounting/aging", handler.Aging)
		r.Get("/accounting/statements", handler.Statement)
		r.Get("/accounting/ratios", handler.Ratios)

		r.Get("/hr/employees", handler.SearchEmployees)
		r.Get("/hr/holidays", handler.SearchHolidays)
	})

	return router
}

type WebAPI struct {
	logger *zerolog.Logger
	server *http.Server
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(config)

	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

package api

import (
	"empadas-server/src/catalog"
	"empadas-server/src/checkout"
	"empadas-server/src/config"
	"empadas-server/src/finance"
	"empadas-server/src/handlers"
	"empadas-server/src/middleware"
	"empadas-server/src/store"

	"github.com/go-chi/chi/v5"
)

// NewRouter builds the route table: RPC-style procedure paths under
// /api/trpc (queries GET, mutations POST), a plain CSV download, and health.
func NewRouter(cfg config.Config, provider *store.Provider) *chi.Mux {
	financeSvc := finance.New(provider, !cfg.IsProduction())
	catalogSvc := catalog.New(provider, !cfg.IsProduction())
	checkoutSvc := checkout.New(catalogSvc, financeSvc, cfg.CheckoutCategory)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", handlers.Health(cfg, provider))
	r.Get("/api/health", handlers.Health(cfg, provider))

	r.Route("/api/trpc", func(r chi.Router) {
		// Public procedures
		r.Post("/auth.login", handlers.Login(cfg))
		r.Post("/auth.logout", handlers.Logout(cfg))
		r.Get("/auth.me", handlers.Me())
		r.Get("/catalog.products.list", handlers.ListProducts(catalogSvc))
		r.Post("/catalog.checkout", handlers.Checkout(checkoutSvc))

		// Admin-only procedures
		r.With(middleware.AdminOnly).Group(func(r chi.Router) {
			// Catalog overrides
			r.Post("/catalog.products.update", handlers.UpdateProduct(catalogSvc))
			r.Post("/catalog.products.reset", handlers.ResetProduct(catalogSvc))

			// Categories
			r.Get("/finance.categories.list", handlers.ListCategories(financeSvc))
			r.Post("/finance.categories.create", handlers.CreateCategory(financeSvc))
			r.Post("/finance.categories.update", handlers.UpdateCategory(financeSvc))
			r.Post("/finance.categories.delete", handlers.DeleteCategory(financeSvc))

			// Transactions
			r.Get("/finance.transactions.list", handlers.ListTransactions(financeSvc))
			r.Post("/finance.transactions.create", handlers.CreateTransaction(financeSvc))
			r.Post("/finance.transactions.update", handlers.UpdateTransaction(financeSvc))
			r.Post("/finance.transactions.delete", handlers.DeleteTransaction(financeSvc))
			r.Post("/finance.transactions.confirm", handlers.ConfirmTransaction(financeSvc))
			r.Post("/finance.transactions.cancel", handlers.CancelTransaction(financeSvc))
			r.Get("/finance.transactions.export.csv", handlers.ExportTransactionsCSV(financeSvc))

			// Accounts (payable/receivable)
			r.Get("/finance.accounts.list", handlers.ListAccounts(financeSvc))
			r.Post("/finance.accounts.create", handlers.CreateAccount(financeSvc))
			r.Post("/finance.accounts.update", handlers.UpdateAccount(financeSvc))
			r.Post("/finance.accounts.delete", handlers.DeleteAccount(financeSvc))
			r.Post("/finance.accounts.pay", handlers.PayAccount(financeSvc))

			// Dashboard
			r.Get("/finance.dashboard.summary", handlers.DashboardSummary(financeSvc))
		})
	})

	// Plain CSV endpoint (nice for download in browser / automation)
	r.With(middleware.AdminOnly).
		Get("/api/finance/transactions/export.csv", handlers.DownloadTransactionsCSV(financeSvc))

	return r
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prestamos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LoanUC     *usecase.LoanUseCase
	CustomerUC *usecase.CustomerUseCase
	StatsUC    *usecase.StatsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Loans
	loans := api.Group("/loans")
	loanHandler := NewLoanHandler(deps.LoanUC, deps.StatsUC)
	loans.Post("/", loanHandler.Create)
	loans.Get("/", loanHandler.List)
	// Las rutas fijas van antes de /:id para que no las capture el parámetro.
	loans.Get("/stats", loanHandler.Stats)
	loans.Get("/search/:idNumber", loanHandler.SearchByIDNumber)
	loans.Get("/:id/statement.pdf", loanHandler.Statement)
	loans.Get("/:id", loanHandler.GetByID)
	loans.Put("/:id", loanHandler.Update)
	loans.Delete("/:id", loanHandler.Delete)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
}

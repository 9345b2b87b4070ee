package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pouchpay/pouchpay/internal/wallet"
)

// RegisterWalletRoutes wires the wallet endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Post("/create", h.Create)
	r.Post("/deposit", h.Deposit)
	r.Post("/withdraw", h.Withdraw)
	r.Get("/balance", h.Balance)
	r.Get("/transactions", h.Transactions)
}

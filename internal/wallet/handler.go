package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes wallet HTTP endpoints. Business errors map to 422 with the
// error message as the body; anything else surfaces as a 500.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type balanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type transactionResponse struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	DateTime time.Time       `json:"dateTime"`
	Type     string          `json:"type"`
}

// Create provisions a wallet for the given username.
func (h *Handler) Create(c *fiber.Ctx) error {
	if err := h.service.Create(c.UserContext(), c.Query("username")); err != nil {
		return asHTTPError(err)
	}
	return c.Status(http.StatusOK).SendString("Create successful")
}

// Deposit credits the user's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		return asHTTPError(err)
	}
	if _, err := h.service.Deposit(c.UserContext(), c.Query("username"), amount); err != nil {
		return asHTTPError(err)
	}
	return c.Status(http.StatusOK).SendString("Deposit successful")
}

// Withdraw debits the user's wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	amount, err := parseAmount(c.Query("amount"))
	if err != nil {
		return asHTTPError(err)
	}
	if _, err := h.service.Withdraw(c.UserContext(), c.Query("username"), amount); err != nil {
		return asHTTPError(err)
	}
	return c.Status(http.StatusOK).SendString("Withdrawal successful")
}

// Balance returns the user's current balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	balance, err := h.service.Balance(c.UserContext(), c.Query("username"))
	if err != nil {
		return asHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(balanceResponse{Balance: balance})
}

// Transactions returns the user's transaction history, oldest first.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	txns, err := h.service.Transactions(c.UserContext(), c.Query("username"))
	if err != nil {
		return asHTTPError(err)
	}
	resp := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		resp = append(resp, transactionResponse{
			ID:       txn.ID.String(),
			Amount:   txn.Amount,
			DateTime: txn.CreatedAt,
			Type:     string(txn.Type),
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// parseAmount rejects missing or malformed amount parameters the same way as
// a non-positive amount.
func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return amount, nil
}

func asHTTPError(err error) error {
	var bizErr *Error
	if errors.As(err, &bizErr) {
		return fiber.NewError(http.StatusUnprocessableEntity, bizErr.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}

package ledger

import "github.com/shopspring/decimal"

// SeedBalance is a test helper that sets an account balance directly, without
// writing a transaction, when using the in-memory store.
func SeedBalance(s Store, username string, balance decimal.Decimal) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		acct, ok := mem.accounts[username]
		if !ok {
			return
		}
		acct.Balance = balance
		mem.accounts[username] = acct
	}
}

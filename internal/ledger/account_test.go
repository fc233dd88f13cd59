package ledger

import (
	"errors"
	"testing"

	"github.com/kaikalii/transactor/internal/amount"
	"github.com/kaikalii/transactor/internal/models"
)

func amt(t *testing.T, s string) amount.Amount {
	t.Helper()
	a, err := amount.FromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return a
}

func mustApply(t *testing.T, a *Account, tx models.Transaction) {
	t.Helper()
	if err := a.Apply(tx); err != nil {
		t.Fatalf("Apply(%+v) failed: %v", tx, err)
	}
}

func checkBalances(t *testing.T, a *Account, available, held string, frozen bool) {
	t.Helper()
	if got := a.Available(); got.Cmp(amt(t, available)) != 0 {
		t.Errorf("available = %s, want %s", got, available)
	}
	if got := a.Held(); got.Cmp(amt(t, held)) != 0 {
		t.Errorf("held = %s, want %s", got, held)
	}
	if a.Frozen() != frozen {
		t.Errorf("frozen = %v, want %v", a.Frozen(), frozen)
	}
}

func TestDepositAndWithdrawal(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))
	mustApply(t, account, models.NewWithdrawal(1, 2, amt(t, "40.5")))
	checkBalances(t, account, "59.5", "0", false)

	if got := account.Total(); got.Cmp(amt(t, "59.5")) != 0 {
		t.Errorf("total = %s, want 59.5", got)
	}
}

func TestDuplicateTransactionID(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))

	var dup *DuplicateTransactionError

	// Same id for a second deposit.
	err := account.Apply(models.NewDeposit(1, 1, amt(t, "50")))
	if !errors.As(err, &dup) || dup.Tx != 1 {
		t.Fatalf("second deposit: got %v, want DuplicateTransactionError", err)
	}

	// Same id for a withdrawal, a different kind.
	err = account.Apply(models.NewWithdrawal(1, 1, amt(t, "10")))
	if !errors.As(err, &dup) {
		t.Fatalf("withdrawal with reused id: got %v, want DuplicateTransactionError", err)
	}

	// The failed attempts must not have touched the account.
	checkBalances(t, account, "100", "0", false)
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "50")))

	err := account.Apply(models.NewWithdrawal(1, 2, amt(t, "60")))
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("got %v, want InsufficientFundsError", err)
	}
	if funds.Current.Cmp(amt(t, "50")) != 0 || funds.Requested.Cmp(amt(t, "60")) != 0 {
		t.Errorf("error carries current=%s requested=%s, want 50/60", funds.Current, funds.Requested)
	}
	checkBalances(t, account, "50", "0", false)
}

func TestDisputeResolve(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))

	mustApply(t, account, models.NewDispute(1, 1))
	checkBalances(t, account, "0", "100", false)

	mustApply(t, account, models.NewResolve(1, 1))
	checkBalances(t, account, "100", "0", false)

	// The deposit can be disputed again after a resolve.
	mustApply(t, account, models.NewDispute(1, 1))
	checkBalances(t, account, "0", "100", false)
}

func TestDisputeChargeback(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))
	mustApply(t, account, models.NewDispute(1, 1))
	mustApply(t, account, models.NewChargeback(1, 1))
	checkBalances(t, account, "0", "0", true)

	// The id is gone from history: neither a second chargeback nor a
	// new dispute may touch it.
	var undisputed *UndisputedResolutionError
	if err := account.Apply(models.NewChargeback(1, 1)); !errors.As(err, &undisputed) {
		t.Errorf("second chargeback: got %v, want UndisputedResolutionError", err)
	}
	var invalid *InvalidDisputeError
	if err := account.Apply(models.NewDispute(1, 1)); !errors.As(err, &invalid) {
		t.Errorf("re-dispute after chargeback: got %v, want InvalidDisputeError", err)
	}
	checkBalances(t, account, "0", "0", true)
}

func TestFrozenAccount(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))
	mustApply(t, account, models.NewDispute(1, 1))
	mustApply(t, account, models.NewChargeback(1, 1))

	// Deposits still land on a frozen account.
	mustApply(t, account, models.NewDeposit(1, 2, amt(t, "5")))
	checkBalances(t, account, "5", "0", true)

	// Withdrawals never do.
	if err := account.Apply(models.NewWithdrawal(1, 3, amt(t, "1"))); !errors.Is(err, ErrAccountFrozen) {
		t.Fatalf("withdrawal on frozen account: got %v, want ErrAccountFrozen", err)
	}
	checkBalances(t, account, "5", "0", true)
}

func TestInvalidDisputes(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))
	mustApply(t, account, models.NewWithdrawal(1, 2, amt(t, "25")))

	var invalid *InvalidDisputeError
	tests := []struct {
		name string
		tx   models.Transaction
	}{
		{name: "unknown id", tx: models.NewDispute(1, 99)},
		{name: "withdrawal is not disputable", tx: models.NewDispute(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := account.Apply(tt.tx); !errors.As(err, &invalid) {
				t.Errorf("got %v, want InvalidDisputeError", err)
			}
		})
	}

	// Disputing an already-disputed deposit is also invalid and must
	// not hold the funds twice.
	mustApply(t, account, models.NewDispute(1, 1))
	if err := account.Apply(models.NewDispute(1, 1)); !errors.As(err, &invalid) {
		t.Errorf("double dispute: got %v, want InvalidDisputeError", err)
	}
	checkBalances(t, account, "-25", "100", false)
}

func TestUndisputedResolution(t *testing.T) {
	account := newAccount()
	mustApply(t, account, models.NewDeposit(1, 1, amt(t, "100")))

	var undisputed *UndisputedResolutionError
	if err := account.Apply(models.NewResolve(1, 1)); !errors.As(err, &undisputed) {
		t.Fatalf("resolve without dispute: got %v, want UndisputedResolutionError", err)
	}
	if undisputed.Kind != models.TypeResolve {
		t.Errorf("error kind = %s, want resolve", undisputed.Kind)
	}
	if err := account.Apply(models.NewChargeback(1, 1)); !errors.As(err, &undisputed) {
		t.Fatalf("chargeback without dispute: got %v, want UndisputedResolutionError", err)
	}
	checkBalances(t, account, "100", "0", false)
}

func TestUnknownTransactionType(t *testing.T) {
	account := newAccount()
	if err := account.Apply(models.Transaction{Type: "refund", Client: 1, Tx: 1}); err == nil {
		t.Fatal("unknown transaction type was accepted")
	}
}

package repositories

import "context"

// TxFn runs within a transaction. Any repository call made with the given
// context participates in that transaction.
type TxFn func(ctx context.Context) error

// TransactionManager scopes a function to a single database transaction:
// the writes either all commit or all roll back. The turn orchestrator
// depends on this to keep a user message and its model reply atomic.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}

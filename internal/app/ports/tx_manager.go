package ports

import "context"

// TxManager serializes one external call into one atomic transaction. Every
// aggregate loaded and saved inside fn commits together or not at all.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

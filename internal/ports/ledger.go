package ports

import (
	"context"

	"github.com/bnema/primemall-cli/internal/domain"
)

// LedgerConnector performs the adapter handshake and hands out a live client.
type LedgerConnector interface {
	Connect(ctx context.Context, credential string) (LedgerClient, error)
}

type LedgerClient interface {
	ReadState(ctx context.Context, address string, function string, args []any) (string, error)
	Submit(ctx context.Context, address string, function string, args []any) (domain.TxID, error)
	// GetReceipt fetches the current receipt once. A transaction the ledger
	// does not know yet yields domain.ErrTransactionNotFound.
	GetReceipt(ctx context.Context, txID domain.TxID) (domain.Receipt, error)
}

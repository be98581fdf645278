package app

import (
	"path/filepath"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/chain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/config"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/paymaster"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/portal"
	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/store"
	transfersvc "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/transfer"
	walletsvc "github.com/MasteraSnackin/lazorkit-passkey-demo/internal/wallet"
)

// historyFilename is the SQLite database under the wallet home.
const historyFilename = "history.db"

// Wire bundles all stores, clients, and services for the CLI.
type Wire struct {
	Sessions  domain.SessionStore
	History   domain.HistoryStore
	Portal    domain.PortalClient
	Paymaster domain.PaymasterClient
	Chain     domain.ChainClient
	Wallet    domain.WalletService
	Transfers domain.TransferService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg *config.Config) (*Wire, error) {
	// Local state under the wallet home
	sessionStore := store.NewSessionFileStore(cfg.Home)
	historyStore, err := store.NewSQLiteHistoryStore(filepath.Join(cfg.Home, historyFilename))
	if err != nil {
		return nil, err
	}

	// Clients for the three endpoints
	portalClient := portal.NewClient(cfg.PortalURL, cfg.HTTPTimeout())
	paymasterClient := paymaster.NewClient(cfg.PaymasterURL, cfg.PaymasterAPIKey, cfg.HTTPTimeout())
	chainClient := chain.NewClient(cfg.RPCURL, cfg.Commitment)

	// High-level services
	walletSvc := walletsvc.New(portalClient, chainClient, sessionStore, cfg.PortalURL)
	transferSvc := transfersvc.New(sessionStore, historyStore, paymasterClient, chainClient)

	return &Wire{
		Sessions:  sessionStore,
		History:   historyStore,
		Portal:    portalClient,
		Paymaster: paymasterClient,
		Chain:     chainClient,
		Wallet:    walletSvc,
		Transfers: transferSvc,
	}, nil
}

// Close releases resources held by the graph, currently the history
// database handle.
func (w *Wire) Close() error {
	return w.History.Close()
}

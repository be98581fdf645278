// The portal binary is a local stand-in for the hosted passkey portal. It
// mints wallet accounts for presented device keys and answers lookups, all
// in memory. The device key doubles as the smart-wallet address so that
// device-signed transfers verify; real portals derive a program address
// owned by the on-chain wallet program instead.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"github.com/MasteraSnackin/lazorkit-passkey-demo/internal/domain"
)

// registry holds every wallet this portal has minted. Dev tool: nothing
// survives a restart.
type registry struct {
	mu       sync.RWMutex
	accounts map[domain.CredentialID]domain.WalletAccount
}

func newRegistry() *registry {
	return &registry{accounts: make(map[domain.CredentialID]domain.WalletAccount)}
}

func (r *registry) put(acct domain.WalletAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acct.CredentialID] = acct
}

func (r *registry) get(id domain.CredentialID) (domain.WalletAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[id]
	return acct, ok
}

func newServer(reg *registry, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New())

	app.Post("/v1/register", func(c *fiber.Ctx) error {
		var req domain.RegisterDeviceRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if req.DeviceKey.IsZero() {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "device_key required"})
		}

		// Reconnects present the credential they already hold.
		if req.CredentialID != "" {
			acct, ok := reg.get(req.CredentialID)
			if !ok {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown credential"})
			}
			return c.JSON(acct)
		}

		acct := domain.WalletAccount{
			CredentialID: domain.CredentialID(uuid.NewString()),
			SmartWallet:  req.DeviceKey,
			DeviceKey:    req.DeviceKey,
			CreatedUnix:  time.Now().Unix(),
		}
		reg.put(acct)
		log.Info("wallet registered",
			"credential", string(acct.CredentialID),
			"wallet", acct.SmartWallet.String(),
			"label", req.Label)
		return c.Status(http.StatusCreated).JSON(acct)
	})

	app.Get("/v1/wallet/:credential", func(c *fiber.Ctx) error {
		acct, ok := reg.get(domain.CredentialID(c.Params("credential")))
		if !ok {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown credential"})
		}
		return c.JSON(acct)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := newServer(newRegistry(), logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("portal listening", "addr", *addr)
		if err := app.Listen(*addr); err != nil {
			logger.Error("portal stopped", "error", err)
		}
	}()

	<-stop
	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

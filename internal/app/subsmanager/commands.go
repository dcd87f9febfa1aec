package subsmanager

import (
	"io"
	"log/slog"

	"github.com/subsmanager/subsmanager-cli/internal/api"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/admincmd"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/authcmd"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/catalogcmd"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/expensecmd"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/ledgercmd"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/subscribecmd"
	"github.com/subsmanager/subsmanager-cli/internal/cli/handlers/walletcmd"
	"github.com/subsmanager/subsmanager-cli/internal/services/admin"
	"github.com/subsmanager/subsmanager-cli/internal/services/catalog"
	"github.com/subsmanager/subsmanager-cli/internal/services/checkout"
	"github.com/subsmanager/subsmanager-cli/internal/services/expense"
	"github.com/subsmanager/subsmanager-cli/internal/services/ledger"
	"github.com/subsmanager/subsmanager-cli/internal/services/wallet"
	"github.com/subsmanager/subsmanager-cli/internal/session"
)

// RegisterCommands регистрирует все команды приложения. Команды с
// подтверждением действий читают ответ пользователя из in.
func RegisterCommands(logger *slog.Logger, client *api.Client, store *session.Store, in io.Reader, out io.Writer) map[string]Command {
	catalogService := catalog.New(logger, client)
	walletService := wallet.New(logger, client)
	ledgerService := ledger.New(logger, client)
	adminService := admin.New(logger, client)
	expenseService := expense.New(logger, client)
	checkoutFlow := checkout.New(logger, client)

	return map[string]Command{
		"auth":      authcmd.New(logger, store, out),
		"catalog":   catalogcmd.New(logger, catalogService, out),
		"subscribe": subscribecmd.New(logger, catalogService, walletService, checkoutFlow, store, out),
		"wallet":    walletcmd.New(logger, walletService, store, in, out),
		"subs":      ledgercmd.New(logger, ledgerService, store, in, out),
		"expenses":  expensecmd.New(logger, expenseService, store, out),
		"admin":     admincmd.New(logger, adminService, store, out),
	}
}

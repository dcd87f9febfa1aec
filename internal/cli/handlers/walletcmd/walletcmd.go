// Package walletcmd реализует команды кошелька и методов оплаты.
package walletcmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/wallet"
)

// WalletService описывает интерфейс бизнес-логики кошелька.
type WalletService interface {
	Overview(ctx context.Context, userID int) (*wallet.Overview, error)
	AddCard(ctx context.Context, userID int, form models.DummyCardMethod) error
	AddCash(ctx context.Context, userID int, balance string) error
	UpdateCashBalance(ctx context.Context, userID, methodID int, form models.DummyCashBalance) error
	DeleteMethod(ctx context.Context, userID, methodID int) error
	Recharge(ctx context.Context, userID int, form models.DummyRecharge) error
	Deduct(ctx context.Context, userID int, amount string) (decimal.Decimal, error)
	Transactions(ctx context.Context, userID int) ([]models.WalletTransaction, error)
}

// SessionInfo отдаёт текущую сессию пользователя.
type SessionInfo interface {
	Current() *models.Session
}

type Handler struct {
	log      *slog.Logger
	service  WalletService
	session  SessionInfo
	validate *validator.Validate
	in       io.Reader
	out      io.Writer
}

func New(log *slog.Logger, service WalletService, session SessionInfo, in io.Reader, out io.Writer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		session:  session,
		validate: validator.New(),
		in:       in,
		out:      out,
	}
}

// Run выполняет подкоманду кошелька.
func (h *Handler) Run(ctx context.Context, args []string) error {
	sess := h.session.Current()
	if sess == nil {
		return fmt.Errorf("not logged in")
	}
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return h.list(ctx, sess.UserID)
	case "add-card":
		return h.addCard(ctx, sess.UserID, args[1:])
	case "add-cash":
		return h.addCash(ctx, sess.UserID, args[1:])
	case "update-cash":
		return h.updateCash(ctx, sess.UserID, args[1:])
	case "delete":
		return h.delete(ctx, sess.UserID, args[1:])
	case "recharge":
		return h.recharge(ctx, sess.UserID, args[1:])
	case "deduct":
		return h.deduct(ctx, sess.UserID, args[1:])
	case "transactions":
		return h.transactions(ctx, sess.UserID)
	default:
		return fmt.Errorf("unknown wallet command: %s", args[0])
	}
}

func (h *Handler) list(ctx context.Context, userID int) error {
	const op = "handlers.wallet.list"
	log := h.log.With(slog.String("op", op))

	overview, err := h.service.Overview(ctx, userID)
	if err != nil {
		log.Error("failed to load payment methods", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintf(h.out, "wallet balance: %s\n", overview.WalletBalance.StringFixed(2))
	if len(overview.Methods) == 0 {
		fmt.Fprintln(h.out, "no payment methods saved")
		return nil
	}

	rows := make([][]string, 0, len(overview.Methods))
	for _, m := range overview.Methods {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.ID),
			m.Kind,
			m.MaskedNumber,
			m.HolderName,
			m.Expiry,
			m.Balance.StringFixed(2),
		})
	}
	return output.Table(h.out, []string{"ID", "TYPE", "NUMBER", "HOLDER", "EXPIRY", "BALANCE"}, rows)
}

func (h *Handler) addCard(ctx context.Context, userID int, args []string) error {
	const op = "handlers.wallet.addcard"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("add-card", flag.ContinueOnError)
	fs.SetOutput(h.out)
	number := fs.String("number", "", "card number, 16 digits")
	holder := fs.String("holder", "", "card holder name")
	expiry := fs.String("expiry", "", "expiry date MM/YY")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.DummyCardMethod{Number: *number, Holder: *holder, Expiry: *expiry}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if err := h.service.AddCard(ctx, userID, form); err != nil {
		log.Error("failed to add card", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	fmt.Fprintln(h.out, "card added")
	return nil
}

func (h *Handler) addCash(ctx context.Context, userID int, args []string) error {
	const op = "handlers.wallet.addcash"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("add-cash", flag.ContinueOnError)
	fs.SetOutput(h.out)
	balance := fs.String("balance", "0", "initial cash balance")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := h.service.AddCash(ctx, userID, *balance); err != nil {
		log.Error("failed to add cash method", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	fmt.Fprintln(h.out, "cash method added")
	return nil
}

func (h *Handler) updateCash(ctx context.Context, userID int, args []string) error {
	const op = "handlers.wallet.updatecash"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("update-cash", flag.ContinueOnError)
	fs.SetOutput(h.out)
	methodID := fs.Int("id", 0, "cash method id")
	balance := fs.String("balance", "", "new balance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *methodID == 0 {
		return fmt.Errorf("flag -id is required")
	}

	form := models.DummyCashBalance{Balance: *balance}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	overview, err := h.service.Overview(ctx, userID)
	if err != nil {
		log.Error("failed to load payment methods", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	var current *models.PaymentMethod
	for i := range overview.Methods {
		if overview.Methods[i].ID == *methodID {
			current = &overview.Methods[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("payment method %d not found", *methodID)
	}

	ok, err := output.Confirm(h.in, h.out, fmt.Sprintf(
		"change balance of method %d from %s to %s?",
		*methodID, current.Balance.StringFixed(2), *balance))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(h.out, "aborted")
		return nil
	}

	if err := h.service.UpdateCashBalance(ctx, userID, *methodID, form); err != nil {
		log.Error("failed to update balance", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	fmt.Fprintln(h.out, "balance updated")
	return nil
}

func (h *Handler) delete(ctx context.Context, userID int, args []string) error {
	const op = "handlers.wallet.delete"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(h.out)
	methodID := fs.Int("id", 0, "payment method id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *methodID == 0 {
		return fmt.Errorf("flag -id is required")
	}

	if err := h.service.DeleteMethod(ctx, userID, *methodID); err != nil {
		log.Error("failed to delete method", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	fmt.Fprintln(h.out, "payment method deleted")
	return nil
}

func (h *Handler) recharge(ctx context.Context, userID int, args []string) error {
	const op = "handlers.wallet.recharge"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("recharge", flag.ContinueOnError)
	fs.SetOutput(h.out)
	methodID := fs.Int("from", 0, "source payment method id")
	amount := fs.String("amount", "", "amount to move into the wallet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.DummyRecharge{MethodID: *methodID, Amount: *amount}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if err := h.service.Recharge(ctx, userID, form); err != nil {
		log.Error("failed to recharge wallet", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	fmt.Fprintln(h.out, "wallet recharged")
	return nil
}

func (h *Handler) deduct(ctx context.Context, userID int, args []string) error {
	const op = "handlers.wallet.deduct"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("deduct", flag.ContinueOnError)
	fs.SetOutput(h.out)
	amount := fs.String("amount", "", "amount to deduct from the wallet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	balance, err := h.service.Deduct(ctx, userID, *amount)
	if err != nil {
		log.Error("failed to deduct from wallet", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	fmt.Fprintf(h.out, "new wallet balance: %s\n", balance.StringFixed(2))
	return nil
}

func (h *Handler) transactions(ctx context.Context, userID int) error {
	const op = "handlers.wallet.transactions"
	log := h.log.With(slog.String("op", op))

	txs, err := h.service.Transactions(ctx, userID)
	if err != nil {
		log.Error("failed to load transactions", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	if len(txs) == 0 {
		fmt.Fprintln(h.out, "no wallet transactions")
		return nil
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", tx.TransactionID),
			tx.Kind,
			tx.Amount.StringFixed(2),
			tx.Date,
		})
	}
	return output.Table(h.out, []string{"ID", "TYPE", "AMOUNT", "DATE"}, rows)
}

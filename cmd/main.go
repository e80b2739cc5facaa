package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"arcbank-client/internal/beneficiary"
	"arcbank-client/internal/config"
	"arcbank-client/internal/domain"
	"arcbank-client/internal/gateway"
	"arcbank-client/internal/history"
	"arcbank-client/internal/session"
	"arcbank-client/internal/transfer"
)

// Switch directory fallback for when the network listing is unavailable.
var fallbackBanks = []domain.Bank{
	{Code: "NEXUS_BANK", Name: "Nexus Bank", BIN: "270100"},
	{Code: "ECUSOL_BK", Name: "Ecusol Bank", BIN: "370100"},
	{Code: "BANTEC", Name: "Bantec", BIN: "100050"},
}

var fallbackRefundReasons = []string{
	"Unrecognized transaction",
	"Wrong destination account",
	"Wrong amount",
	"Duplicate transfer",
}

type app struct {
	cfg        *config.Config
	gw         *gateway.Client
	session    *session.Store
	payees     *beneficiary.Store
	reconciler *transfer.Reconciler
	log        *log.Logger
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "arcbank"})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "err", err)
	}

	ctx := context.Background()
	gw := gateway.New(cfg.GatewayURL, cfg.Identification, cfg.APIKey, cfg.HTTPTimeout)

	holder, err := gw.ClientByIdentification(ctx, cfg.Identification)
	if err != nil {
		logger.Fatal("could not resolve account holder", "err", err)
	}
	accounts, err := gw.ConsolidatedPosition(ctx)
	if err != nil {
		logger.Fatal("could not load accounts", "err", err)
	}
	if len(accounts) == 0 {
		logger.Fatal("no accounts found for holder", "identification", cfg.Identification)
	}

	payees, err := beneficiary.NewStore()
	if err != nil {
		logger.Warn("saved beneficiaries unavailable", "err", err)
	}

	store := session.NewStore(*holder, accounts)
	a := &app{
		cfg:        cfg,
		gw:         gw,
		session:    store,
		payees:     payees,
		reconciler: transfer.NewReconciler(store, gw, logger),
		log:        logger,
	}

	fmt.Printf("Welcome, %s\n", holder.FullName)
	a.menuLoop(ctx)
}

func (a *app) menuLoop(ctx context.Context) {
	for {
		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("ARCBANK").
				Options(
					huh.NewOption("Consolidated position", "position"),
					huh.NewOption("Movements", "movements"),
					huh.NewOption("Domestic transfer", "domestic"),
					huh.NewOption("Interbank transfer", "interbank"),
					huh.NewOption("Request a refund", "refund"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			a.log.Error("menu aborted", "err", err)
			return
		}

		switch choice {
		case "position":
			a.showPosition()
		case "movements":
			a.showMovements(ctx)
		case "domestic":
			a.runDomestic(ctx)
		case "interbank":
			a.runInterbank(ctx)
		case "refund":
			a.runRefund(ctx)
		case "quit":
			return
		}
	}
}

func (a *app) showPosition() {
	fmt.Println("\nACCOUNT            TYPE      BALANCE")
	for _, acc := range a.session.Accounts() {
		fmt.Printf("%-18s %-9s $%s\n", acc.Number, acc.Type, acc.Balance.StringFixed(2))
	}
	fmt.Println()
}

func (a *app) showMovements(ctx context.Context) {
	acc, ok := a.selectAccount("Account to inspect")
	if !ok {
		return
	}

	txs, err := a.gw.Transactions(ctx, acc.ID)
	if err != nil {
		a.log.Error("could not fetch movements", "err", err)
		return
	}

	classified := history.Classify(txs, acc.ID)
	fmt.Printf("\n%d operations on %s\n", len(classified), acc.Number)
	for _, tx := range classified {
		sign := "+"
		if tx.IsDebit {
			sign = "-"
		}
		ref := tx.Raw.Reference
		if ref == "" {
			ref = tx.Raw.ID
		}
		refundable := ""
		if tx.IsRefundable {
			refundable = " [refundable]"
		}
		fmt.Printf("%s  %-22s %s$%s  ref=%s%s\n",
			tx.OccurredAt.Format("2006-01-02 15:04"),
			tx.DisplayType, sign, tx.Raw.Amount.StringFixed(2), ref, refundable)
	}
	fmt.Println()
}

func (a *app) runDomestic(ctx context.Context) {
	accounts := a.session.Accounts()
	wf := transfer.NewDomestic(a.gw, a.gw, a.reconciler, a.cfg.Channel, accounts[0].ID, a.log)

	for {
		switch wf.State() {
		case transfer.StateCollectDestination:
			var number, name string
			ok := runForm(
				huh.NewInput().Title("Destination account number").Value(&number),
				huh.NewInput().Title("Holder name").Value(&name),
			)
			if !ok {
				return
			}
			if err := wf.SetDestination(ctx, number, name); err != nil {
				fmt.Println("✗ " + wf.LastError())
			}

		case transfer.StateConfirmAmount:
			sourceID, amount, action := a.confirmForm(wf.LastError())
			switch action {
			case "back":
				if err := wf.Back(); err != nil {
					return
				}
			case "cancel":
				return
			default:
				if err := wf.Submit(ctx, sourceID, amount); err != nil {
					fmt.Println("✗ " + wf.LastError())
				}
			}

		case transfer.StateSuccess:
			res := wf.Result()
			fmt.Println("\nTransfer completed.")
			if res.ReferenceCode != "" {
				fmt.Println("Reference: " + res.ReferenceCode)
			}
			fmt.Println()
			return
		}
	}
}

func (a *app) runInterbank(ctx context.Context) {
	banks, err := a.gw.Banks(ctx)
	if err != nil || len(banks) == 0 {
		a.log.Warn("switch directory unavailable, using built-in list", "err", err)
		banks = fallbackBanks
	}

	wf := transfer.NewInterbank(transfer.InterbankConfig{
		Checker:    a.gw,
		Submitter:  a.gw,
		Reconciler: a.reconciler,
		Logger:     a.log,
		Channel:    a.cfg.Channel,
		Narrate:    func(msg string) { fmt.Println("… " + msg) },
	})

	for {
		switch wf.State() {
		case transfer.StateCollectDestination:
			if !a.collectInterbankDestination(ctx, wf, banks) {
				return
			}

		case transfer.StateConfirmAmount:
			sourceID, amount, action := a.confirmForm(wf.LastError())
			switch action {
			case "back":
				if err := wf.Back(); err != nil {
					return
				}
			case "cancel":
				return
			default:
				if err := wf.Submit(ctx, sourceID, amount); err != nil {
					fmt.Println("✗ " + wf.LastError())
				}
			}

		case transfer.StateSuccess:
			fmt.Println("\nInterbank transfer completed.")
			fmt.Println("Reference: " + wf.Reference())
			fmt.Println()
			return
		}
	}
}

// collectInterbankDestination walks the destination step until the gate
// validates and the user commits, or the user backs out. Returns false to
// abandon the workflow.
func (a *app) collectInterbankDestination(ctx context.Context, wf *transfer.Interbank, banks []domain.Bank) bool {
	bankOptions := make([]huh.Option[string], 0, len(banks))
	for _, b := range banks {
		label := b.Name
		if b.BIN != "" {
			label = fmt.Sprintf("%s (%s)", b.Name, b.BIN)
		}
		bankOptions = append(bankOptions, huh.NewOption(label, b.Code))
	}

	var bankCode, accountNumber string
	ok := runForm(
		huh.NewSelect[string]().Title("Destination institution").Options(bankOptions...).Value(&bankCode),
		huh.NewInput().Title("Destination account number").Value(&accountNumber),
	)
	if !ok {
		return false
	}

	bankName := bankCode
	for _, b := range banks {
		if b.Code == bankCode {
			bankName = b.Name
		}
	}

	if err := wf.SetDestination(bankCode, accountNumber, bankName); err != nil {
		return false
	}
	if _, err := wf.Validate(ctx); err != nil {
		return false
	}

	gate := wf.Gate()
	if gate.Status() != transfer.GateValid {
		fmt.Println("✗ " + gate.Message())
		return true // stay on this step
	}
	fmt.Println("✓ " + gate.Message())

	var proceed bool
	if ok := runForm(huh.NewConfirm().
		Title("Beneficiary: " + gate.OwnerName() + ". Continue?").
		Value(&proceed)); !ok {
		return false
	}
	if !proceed {
		return true
	}

	if err := wf.ConfirmDestination(); err != nil {
		fmt.Println("✗ " + wf.LastError())
		return true
	}

	if a.payees != nil {
		if err := a.payees.Add(beneficiary.Beneficiary{
			BankCode:      gate.BankCode(),
			AccountNumber: gate.AccountNumber(),
			OwnerName:     gate.OwnerName(),
			BankName:      bankName,
		}); err != nil {
			a.log.Warn("could not save beneficiary", "err", err)
		}
	}
	return true
}

func (a *app) runRefund(ctx context.Context) {
	acc, ok := a.selectAccount("Account of the transaction")
	if !ok {
		return
	}

	txs, err := a.gw.Transactions(ctx, acc.ID)
	if err != nil {
		a.log.Error("could not fetch movements", "err", err)
		return
	}

	var options []huh.Option[string]
	byID := map[string]history.ClassifiedTransaction{}
	for _, tx := range history.Classify(txs, acc.ID) {
		if !tx.IsRefundable {
			continue
		}
		label := fmt.Sprintf("%s  %s  $%s",
			tx.OccurredAt.Format("2006-01-02 15:04"), tx.DisplayType, tx.Raw.Amount.StringFixed(2))
		options = append(options, huh.NewOption(label, tx.Raw.ID))
		byID[tx.Raw.ID] = tx
	}
	if len(options) == 0 {
		fmt.Println("No refundable transactions on this account.")
		return
	}

	reasons, err := a.gw.RefundReasons(ctx)
	if err != nil || len(reasons) == 0 {
		reasons = fallbackRefundReasons
	}
	reasonOptions := make([]huh.Option[string], 0, len(reasons))
	for _, r := range reasons {
		reasonOptions = append(reasonOptions, huh.NewOption(r, r))
	}

	var txID, reason string
	if ok := runForm(
		huh.NewSelect[string]().Title("Transaction to reverse").Options(options...).Value(&txID),
		huh.NewSelect[string]().Title("Reason").Options(reasonOptions...).Value(&reason),
	); !ok {
		return
	}

	tx := byID[txID]
	if tx.Raw.ID != "" {
		err = a.gw.RequestRefund(ctx, tx.Raw.ID, reason)
	} else {
		err = a.gw.RequestRefundByReference(ctx, tx.Raw.Reference, reason)
	}
	if err != nil {
		a.log.Error("refund request rejected", "err", err)
		return
	}
	fmt.Println("Refund request submitted.")
}

// confirmForm gathers the source account and amount for the confirmation
// step. action is "submit", "back" or "cancel".
func (a *app) confirmForm(lastError string) (sourceID string, amount decimal.Decimal, action string) {
	if lastError != "" {
		fmt.Println("✗ " + lastError)
	}

	accounts := a.session.Accounts()
	accOptions := make([]huh.Option[string], 0, len(accounts))
	for _, acc := range accounts {
		label := fmt.Sprintf("%s — balance $%s", acc.Number, acc.Balance.StringFixed(2))
		accOptions = append(accOptions, huh.NewOption(label, acc.ID))
	}

	var amountStr string
	ok := runForm(
		huh.NewSelect[string]().Title("Source account").Options(accOptions...).Value(&sourceID),
		huh.NewInput().Title("Amount").Placeholder("0.00").Value(&amountStr),
		huh.NewSelect[string]().Title("Action").
			Options(
				huh.NewOption("Execute transfer", "submit"),
				huh.NewOption("Back", "back"),
				huh.NewOption("Cancel", "cancel"),
			).
			Value(&action),
	)
	if !ok {
		return "", decimal.Zero, "cancel"
	}
	if action != "submit" {
		return sourceID, decimal.Zero, action
	}

	parsed, err := decimal.NewFromString(amountStr)
	if err != nil {
		// The workflow rejects a non-positive amount locally.
		parsed = decimal.Zero
	}
	return sourceID, parsed, action
}

func (a *app) selectAccount(title string) (domain.Account, bool) {
	accounts := a.session.Accounts()
	options := make([]huh.Option[string], 0, len(accounts))
	for _, acc := range accounts {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s — %s", acc.Number, acc.Type), acc.ID))
	}

	var id string
	if ok := runForm(huh.NewSelect[string]().Title(title).Options(options...).Value(&id)); !ok {
		return domain.Account{}, false
	}
	acc, found := a.session.Account(id)
	return acc, found
}

func runForm(fields ...huh.Field) bool {
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return false
	}
	return true
}

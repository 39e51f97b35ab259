// Command gamebank is the interactive table companion: a line-based console
// over the state engine. It restores the last snapshot on startup, autosaves
// on an interval, and saves again on exit or SIGINT/SIGTERM.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/yichenq/gamebank/internal/config"
	"github.com/yichenq/gamebank/internal/events"
	"github.com/yichenq/gamebank/internal/logger"
	"github.com/yichenq/gamebank/internal/models"
	"github.com/yichenq/gamebank/internal/notify"
	"github.com/yichenq/gamebank/internal/store"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	st := store.New(cfg.Snapshot.FilePath)
	if err := st.Load(); err != nil {
		logger.Fatal("Failed to load snapshot: %v", err)
	}
	logger.Info("State restored from %s (%d players)", cfg.Snapshot.FilePath, len(st.Players()))

	var announcer *notify.Telegram
	if cfg.Telegram.Enabled {
		announcer, err = notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram announcer: %v", err)
		}
		logger.Info("Telegram announcer initialized")
	} else {
		logger.Debug("Telegram announcements disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// Autosave loop.
	go func() {
		ticker := time.NewTicker(cfg.Snapshot.AutosaveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := st.Save(); err != nil {
					logger.Warn("Autosave failed: %v", err)
				} else {
					logger.Debug("Autosaved snapshot")
				}
			}
		}
	}()

	app := &app{
		store:     st,
		wheel:     events.NewWheel(time.Now().UnixNano()),
		announcer: announcer,
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	fmt.Println("gamebank — type 'help' for commands")
	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			shutdown(st)
			return
		case line, ok := <-lines:
			if !ok || !app.execute(line) {
				shutdown(st)
				return
			}
		}
	}
}

func shutdown(st *store.Store) {
	if err := st.Save(); err != nil {
		logger.Error("Failed to save snapshot on exit: %v", err)
		return
	}
	logger.Info("Snapshot saved, goodbye")
}

type app struct {
	store     *store.Store
	wheel     *events.Wheel
	announcer *notify.Telegram
}

// execute runs one console command. Returns false when the session should end.
func (a *app) execute(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "quit", "exit":
		return false
	case "help":
		printHelp()
	case "stocks":
		a.printStocks()
	case "players":
		a.printPlayers()
	case "debts":
		a.printDebts()
	case "trades":
		a.printTrades(args[1:])
	case "price":
		a.setPrice(args[1:])
	case "adjust":
		a.adjustPrice(args[1:])
	case "undo":
		if a.store.UndoLastPriceChange() {
			fmt.Println("Reverted the last price change.")
		} else {
			fmt.Println("Nothing to undo.")
		}
	case "holding":
		a.adjustHolding(args[1:])
	case "cash":
		a.adjustCash(args[1:])
	case "sell":
		a.sell(args[1:])
	case "cashout":
		a.cashOut(args[1:])
	case "trade":
		a.tradeByAmount(args[1:])
	case "profit":
		a.printProfit(args[1:])
	case "debt":
		a.debtCommand(args[1:])
	case "player":
		a.playerCommand(args[1:])
	case "insurance":
		a.insuranceCommand(args[1:])
	case "spin":
		a.spin()
	case "roster":
		a.store.ResetToDefaultRoster()
		fmt.Println("Roster reset to the default five players.")
	case "newgame":
		a.store.StartNewGame()
		fmt.Println("New game started.")
		a.announce(func(t *notify.Telegram) error { return t.AnnounceNewGame() })
	case "reset":
		a.store.FullReset()
		fmt.Println("Full reset done.")
	case "save":
		if err := a.store.Save(); err != nil {
			fmt.Printf("Save failed: %v\n", err)
		} else {
			fmt.Println("Saved.")
		}
	default:
		fmt.Printf("Unknown command %q, try 'help'.\n", args[0])
	}
	return true
}

func printHelp() {
	fmt.Print(`Commands:
  stocks | players | debts | trades <playerID>
  price <kind> <value>      set a stock price
  adjust <kind> <percent>   move a price by percent
  undo                      revert the last price change
  holding <playerID> <kind> <delta>
  cash <playerID> <delta>
  sell <playerID> <kind> <quantity>
  cashout <playerID> <amount>
  trade <playerID> <kind> buy|sell <amount>
  profit <playerID>
  debt add <debtorID> <creditorID|bank> <amount>
  debt repay <debtID> [amount]
  debt remove <debtID>
  player add <name> <color> | player rename <id> <name>
  player color <id> <color> | player remove <id>
  insurance fee <id> <delta> | insurance toggle <id> | insurance raise
  spin                      draw a chance event
  roster | newgame | reset | save | quit
`)
}

func (a *app) printStocks() {
	stocks := a.store.Stocks()
	for _, kind := range models.Kinds() {
		s := stocks[kind]
		fmt.Printf("%-10s %-10s price %.2f (%d samples)\n", s.ID, s.Name, s.Price, len(s.History))
	}
}

func (a *app) printPlayers() {
	for _, p := range a.store.Players() {
		fmt.Printf("%s  %-14s cash %.2f  property %d  education %d  insurance %.0f (%s)\n",
			p.ID, p.Name, p.Cash,
			p.Holding(models.KindProperty), p.Holding(models.KindEducation),
			p.InsuranceFee, onOff(p.InsuranceEnabled))
	}
}

func (a *app) printDebts() {
	debts := a.store.Debts()
	if len(debts) == 0 {
		fmt.Println("No outstanding debts.")
		return
	}
	for _, d := range debts {
		fmt.Printf("%s  %s owes %s  %.2f of %.2f\n",
			d.ID, a.store.PlayerName(d.DebtorID), a.store.PlayerName(d.CreditorID),
			d.RemainingAmount, d.OriginalAmount)
	}
}

func (a *app) printTrades(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: trades <playerID>")
		return
	}
	for _, rec := range a.store.TradeRecordsFor(args[0]) {
		fmt.Printf("%s  %-4s %3d × %s @ %.2f\n",
			rec.Timestamp.Format("15:04:05"), rec.Direction, rec.Quantity, rec.Kind, rec.Price)
	}
}

func (a *app) setPrice(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: price <kind> <value>")
		return
	}
	kind := models.StockKind(args[0])
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("Invalid price.")
		return
	}
	old, _ := a.store.Stock(kind)
	if !a.store.SetPrice(kind, value) {
		fmt.Println("Price not changed.")
		return
	}
	cur, _ := a.store.Stock(kind)
	fmt.Printf("%s: %.2f → %.2f\n", cur.Name, old.Price, cur.Price)
	a.announce(func(t *notify.Telegram) error { return t.AnnouncePriceMove(cur, old.Price) })
}

func (a *app) adjustPrice(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: adjust <kind> <percent>")
		return
	}
	kind := models.StockKind(args[0])
	percent, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("Invalid percent.")
		return
	}
	old, _ := a.store.Stock(kind)
	if !a.store.AdjustPriceByPercent(kind, percent) {
		fmt.Println("Price not changed.")
		return
	}
	cur, _ := a.store.Stock(kind)
	fmt.Printf("%s %+.1f%%: %.2f → %.2f\n", cur.Name, percent, old.Price, cur.Price)
	a.announce(func(t *notify.Telegram) error { return t.AnnouncePriceMove(cur, old.Price) })
}

func (a *app) adjustHolding(args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: holding <playerID> <kind> <delta>")
		return
	}
	delta, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Println("Invalid delta.")
		return
	}
	if !a.store.AdjustHolding(args[0], models.StockKind(args[1]), delta) {
		fmt.Println("Holding not changed.")
		return
	}
	p, _ := a.store.Player(args[0])
	fmt.Printf("%s now holds %d %s\n", p.Name, p.Holding(models.StockKind(args[1])), args[1])
}

func (a *app) adjustCash(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: cash <playerID> <delta>")
		return
	}
	delta, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("Invalid delta.")
		return
	}
	if !a.store.AdjustCash(args[0], delta) {
		fmt.Println("Cash not changed.")
		return
	}
	p, _ := a.store.Player(args[0])
	fmt.Printf("%s balance now %.2f\n", p.Name, p.Cash)
}

func (a *app) sell(args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: sell <playerID> <kind> <quantity>")
		return
	}
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Println("Invalid quantity.")
		return
	}
	proceeds := a.store.SellForCash(args[0], models.StockKind(args[1]), qty)
	if proceeds == 0 {
		fmt.Println("Sale failed: insufficient holding.")
		return
	}
	fmt.Printf("Sold %d %s for %.2f\n", qty, args[1], proceeds)
}

func (a *app) cashOut(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: cashout <playerID> <amount>")
		return
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("Invalid amount.")
		return
	}
	if !a.store.CashOut(args[0], amount) {
		fmt.Println("Cash-out failed: portfolio value below target.")
		return
	}
	p, _ := a.store.Player(args[0])
	fmt.Printf("%s cashed out, balance now %.2f\n", p.Name, p.Cash)
}

func (a *app) tradeByAmount(args []string) {
	if len(args) != 4 {
		fmt.Println("Usage: trade <playerID> <kind> buy|sell <amount>")
		return
	}
	amount, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		fmt.Println("Invalid amount.")
		return
	}
	units, diff, ok := a.store.TradeByAmount(args[0], models.StockKind(args[1]), models.TradeDirection(args[2]), amount)
	if !ok {
		fmt.Println("Trade failed.")
		return
	}
	fmt.Printf("Traded %d units", units)
	switch {
	case diff > 0:
		fmt.Printf(" (rounding gain %.2f)\n", diff)
	case diff < 0:
		fmt.Printf(" (rounding loss %.2f)\n", -diff)
	default:
		fmt.Println()
	}
}

func (a *app) printProfit(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: profit <playerID>")
		return
	}
	id := args[0]
	fmt.Printf("%s: assets %.2f, realized %.2f, unrealized %.2f\n",
		a.store.PlayerName(id),
		a.store.TotalAssetValue(id),
		a.store.CalculateRealizedProfit(id),
		a.store.UnrealizedProfit(id))
}

func (a *app) debtCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: debt add|repay|remove ...")
		return
	}
	switch args[0] {
	case "add":
		if len(args) != 4 {
			fmt.Println("Usage: debt add <debtorID> <creditorID|bank> <amount>")
			return
		}
		amount, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			fmt.Println("Invalid amount.")
			return
		}
		rec, ok := a.store.AddDebt(args[1], args[2], amount)
		if !ok {
			fmt.Println("Debt not recorded.")
			return
		}
		fmt.Printf("Debt %s recorded: %s owes %s %.2f\n",
			rec.ID, a.store.PlayerName(rec.DebtorID), a.store.PlayerName(rec.CreditorID), rec.OriginalAmount)
	case "repay":
		switch len(args) {
		case 2:
			if a.store.RepayFull(args[1]) {
				fmt.Println("Debt fully repaid and removed.")
			} else {
				fmt.Println("Unknown debt.")
			}
		case 3:
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fmt.Println("Invalid amount.")
				return
			}
			if a.store.Repay(args[1], amount) {
				fmt.Println("Repayment recorded.")
			} else {
				fmt.Println("Repayment failed.")
			}
		default:
			fmt.Println("Usage: debt repay <debtID> [amount]")
		}
	case "remove":
		if len(args) != 2 {
			fmt.Println("Usage: debt remove <debtID>")
			return
		}
		if a.store.RemoveDebt(args[1]) {
			fmt.Println("Debt removed.")
		} else {
			fmt.Println("Unknown debt.")
		}
	default:
		fmt.Println("Usage: debt add|repay|remove ...")
	}
}

func (a *app) playerCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: player add|rename|color|remove ...")
		return
	}
	switch args[0] {
	case "add":
		if len(args) != 3 {
			fmt.Println("Usage: player add <name> <color>")
			return
		}
		p, ok := a.store.AddPlayer(models.Player{
			Name:         args[1],
			Color:        args[2],
			InsuranceFee: models.DefaultInsuranceFee,
		})
		if !ok {
			fmt.Println("Player not added.")
			return
		}
		fmt.Printf("Added %s (%s)\n", p.Name, p.ID)
	case "rename":
		if len(args) != 3 {
			fmt.Println("Usage: player rename <id> <name>")
			return
		}
		if a.store.RenamePlayer(args[1], args[2]) {
			fmt.Println("Renamed.")
		} else {
			fmt.Println("Unknown player.")
		}
	case "color":
		if len(args) != 3 {
			fmt.Println("Usage: player color <id> <color>")
			return
		}
		if a.store.RecolorPlayer(args[1], args[2]) {
			fmt.Println("Color updated.")
		} else {
			fmt.Println("Unknown player.")
		}
	case "remove":
		if len(args) != 2 {
			fmt.Println("Usage: player remove <id>")
			return
		}
		if a.store.RemovePlayer(args[1]) {
			fmt.Println("Removed.")
		} else {
			fmt.Println("Unknown player.")
		}
	default:
		fmt.Println("Usage: player add|rename|color|remove ...")
	}
}

func (a *app) insuranceCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: insurance fee|toggle|raise ...")
		return
	}
	switch args[0] {
	case "fee":
		if len(args) != 3 {
			fmt.Println("Usage: insurance fee <id> <delta>")
			return
		}
		delta, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			fmt.Println("Invalid delta.")
			return
		}
		if a.store.AdjustInsuranceFee(args[1], delta) {
			p, _ := a.store.Player(args[1])
			fmt.Printf("%s insurance fee now %.0f\n", p.Name, p.InsuranceFee)
		} else {
			fmt.Println("Unknown player.")
		}
	case "toggle":
		if len(args) != 2 {
			fmt.Println("Usage: insurance toggle <id>")
			return
		}
		if a.store.ToggleInsurance(args[1]) {
			p, _ := a.store.Player(args[1])
			fmt.Printf("%s insurance %s\n", p.Name, onOff(p.InsuranceEnabled))
		} else {
			fmt.Println("Unknown player.")
		}
	case "raise":
		a.store.IncreaseAllInsuranceFees()
		fmt.Printf("All insurance fees raised by %.0f\n", models.InsuranceFeeStep)
	default:
		fmt.Println("Usage: insurance fee|toggle|raise ...")
	}
}

func (a *app) spin() {
	ev := a.wheel.Spin()
	fmt.Printf("🎲 %s\n", ev.Description)
	events.Apply(a.store, ev)
	for _, effect := range ev.Effects {
		cur, _ := a.store.Stock(effect.Kind)
		fmt.Printf("   %s %+.0f%% → %.2f\n", effect.Kind, effect.Percent, cur.Price)
	}
	a.announce(func(t *notify.Telegram) error { return t.AnnounceEvent(ev) })
}

func (a *app) announce(send func(*notify.Telegram) error) {
	if a.announcer == nil {
		return
	}
	if err := send(a.announcer); err != nil {
		logger.Warn("Telegram announcement failed: %v", err)
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alejandrodnm/basisbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

const sampleTrades = 5

// Console implementa ports.Notifier escribiendo a stdout.
type Console struct {
	out     io.Writer
	verbose bool // imprime el log completo de trades además del sample
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(verbose bool) *Console {
	return &Console{out: os.Stdout, verbose: verbose}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, verbose bool) *Console {
	return &Console{out: w, verbose: verbose}
}

// NotifyBacktest imprime el resumen del run y una tabla con los trades.
func (c *Console) NotifyBacktest(_ context.Context, result domain.BacktestResult) error {
	fmt.Fprint(c.out, result.String())

	if result.RoundTrips == 0 {
		fmt.Fprintln(c.out, "No trades triggered: basis never exceeded the entry threshold.")
		if result.SkippedRows > 0 || result.DroppedRows > 0 {
			fmt.Fprintf(c.out, "(%d rows skipped, %d dropped in alignment)\n",
				result.SkippedRows, result.DroppedRows)
		}
		return nil
	}

	c.printSample(result.Trades)

	if c.verbose {
		c.printTradeLog(result.Trades)
	}
	return nil
}

// printSample imprime los primeros trades como tabla.
func (c *Console) printSample(trades []domain.BacktestTrade) {
	n := min(sampleTrades, len(trades))
	fmt.Fprintf(c.out, "Sample Trades (top %d of %d):\n", n, len(trades))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Date", "Action", "Side", "Price", "Contracts", "PnL")

	for i, t := range trades[:n] {
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.Timestamp.Format("2006-01-02"),
			t.Action.String(),
			t.Side.String(),
			fmt.Sprintf("%d¢", t.Price),
			fmt.Sprintf("%d", t.Contracts),
			fmt.Sprintf("%+.1f¢", t.PnL),
		)
	}
	table.Render()
}

// printTradeLog imprime el log completo, un trade por línea.
func (c *Console) printTradeLog(trades []domain.BacktestTrade) {
	fmt.Fprintln(c.out, "\n===== Trade Log =====")
	for _, t := range trades {
		fmt.Fprintf(c.out, "%s: %s %d @ %d¢  P&L: $%+.2f\n",
			t.Timestamp.Format("2006-01-02"), t.Action, t.Contracts, t.Price, t.PnL/100)
	}
}

// NotifySignal imprime una señal en vivo en una línea.
func (c *Console) NotifySignal(_ context.Context, snapshot domain.MarketSnapshot, signal domain.Signal) error {
	fmt.Fprintf(c.out, "[%s] %s %s conf=%.2f — %s\n",
		time.Now().Format("15:04:05"), snapshot.Ticker, signal.Action, signal.Confidence, signal.Reason)
	return nil
}

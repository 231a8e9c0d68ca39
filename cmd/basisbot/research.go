package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alejandrodnm/basisbot/config"
	"github.com/alejandrodnm/basisbot/internal/ports"
	"github.com/alejandrodnm/basisbot/internal/research"
)

// strikeBase es el strike de referencia del contrato Kalshi modelado.
const strikeBase = 3.50

// runResearch construye los snapshots del grafo y muestra los días con mayor
// basis — material exploratorio, ninguna decisión de trading depende de esto.
func runResearch(ctx context.Context, cfg *config.Config, prices ports.PriceHistorySource) {
	history, err := prices.FetchPriceHistory(ctx)
	if err != nil {
		slog.Error("failed to load price history", "err", err)
		os.Exit(1)
	}

	builder, err := research.NewBuilder(cfg.Data.MockSeed, strikeBase, cfg.Model.StepSize)
	if err != nil {
		slog.Error("invalid research parameters", "err", err)
		os.Exit(1)
	}

	snapshots := builder.BuildAll(history)
	slog.Info("built research snapshots", "count", len(snapshots))

	fmt.Println("\n=== Research graph: widest basis days ===")
	shown := 0
	for _, s := range snapshots {
		if s.BasisWeight() < 0.05 {
			continue
		}
		cme := s.Nodes[research.NodeCME]
		kalshi := s.Nodes[research.NodeKalshi]
		fmt.Printf("%s  cme_rate=%.3f  kalshi_price=%.0fc  basis=%.3f\n",
			s.Date.Format("2006-01-02"), cme.Value, kalshi.Value, s.BasisWeight())
		shown++
		if shown >= 10 {
			break
		}
	}
	if shown == 0 {
		fmt.Println("(no days above basis 0.05)")
	}
}

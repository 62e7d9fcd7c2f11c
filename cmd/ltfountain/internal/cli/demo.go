package cli

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/fountaincodec/lt/lt"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func newDemoCmd() *cobra.Command {
	var input string
	var maxBlocks int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a loss-simulated encode/decode round trip over a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("demo: read input: %w", err)
			}

			sessionID := uuid.New()
			logger := slog.Default().With(slog.String("session", sessionID.String()))

			blocks := chunkFile(data, cfg.K, cfg.BlockSize)
			source := make([]lt.SourceBlock, len(blocks))
			for i, b := range blocks {
				source[i] = lt.SourceBlock(b)
			}

			enc, err := lt.NewEncoder(source, cfg.MasterSeed, cfg.SolitonC, cfg.SolitonDelta)
			if err != nil {
				return fmt.Errorf("demo: new encoder: %w", err)
			}
			dec, err := lt.NewDecoder(cfg.K, cfg.BlockSize, cfg.SolitonC, cfg.SolitonDelta, lt.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("demo: new decoder: %w", err)
			}

			var metricsShutdown func()
			var gauges *demoMetrics
			if cfg.MetricsAddr != "" {
				gauges, metricsShutdown = startMetricsServer(cfg.MetricsAddr, logger)
				defer metricsShutdown()
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("ltfountain demo — session %s", sessionID)))

			tbl := table.New("Block", "Seed", "Degree", "Outcome")

			lossSource := rand.New(rand.NewSource(time.Now().UnixNano()))
			sent := 0
			if maxBlocks <= 0 {
				dist, _ := lt.NewDistribution(cfg.K, cfg.SolitonC, cfg.SolitonDelta)
				maxBlocks = dist.EstimateBlocksNeeded() * 4
			}

			for i := 0; i < maxBlocks && !dec.IsComplete(); i++ {
				eb := enc.GenerateBlock(nil)
				sent++

				if lossSource.Float64() < cfg.LossRate {
					tbl.AddRow(i, eb.Seed, eb.Degree, failStyle.Render("dropped"))
					continue
				}

				result, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
				if err != nil {
					return fmt.Errorf("demo: add block: %w", err)
				}
				if gauges != nil {
					gauges.decodedCount.Set(float64(result.DecodedCount))
					gauges.rounds.Set(float64(dec.CurrentRound()))
				}
				outcome := okStyle.Render(fmt.Sprintf("decoded=%d", result.DecodedCount))
				if result.SeedMismatch {
					outcome = failStyle.Render("seed mismatch")
				}
				tbl.AddRow(i, eb.Seed, eb.Degree, outcome)
			}

			tbl.Print()

			if !dec.IsComplete() {
				fmt.Println(failStyle.Render(fmt.Sprintf("incomplete after %d blocks (%d/%d decoded)", sent, dec.DecodedCount(), cfg.K)))
				return fmt.Errorf("demo: decoding did not complete")
			}

			recovered := reassembleFile(lt32sFromSource(dec.GetAllDecodedBlocks()), len(data))
			match := string(recovered) == string(data)
			status := okStyle.Render("OK")
			if !match {
				status = failStyle.Render("MISMATCH")
			}
			fmt.Printf("%s recovered %d bytes in %d blocks, %d peel rounds: %s\n",
				status, len(recovered), sent, dec.CurrentRound(), map[bool]string{true: "bytes match", false: "bytes differ"}[match])

			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to the file to round-trip")
	cmd.Flags().IntVar(&maxBlocks, "max-blocks", 0, "cap on generated blocks (0 = auto-estimate)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func lt32sFromSource(blocks []lt.SourceBlock) []lt32 {
	out := make([]lt32, len(blocks))
	for i, b := range blocks {
		out[i] = []int32(b)
	}
	return out
}

type demoMetrics struct {
	decodedCount prometheus.Gauge
	rounds       prometheus.Gauge
}

func startMetricsServer(addr string, logger *slog.Logger) (*demoMetrics, func()) {
	m := &demoMetrics{
		decodedCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ltfountain_decoded_blocks",
			Help: "Number of source blocks recovered so far in the current demo run.",
		}),
		rounds: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ltfountain_peel_rounds",
			Help: "Number of peeling rounds performed so far in the current demo run.",
		}),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("err", err))
		}
	}()

	return m, func() {
		_ = srv.Close()
	}
}

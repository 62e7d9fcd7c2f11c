package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fountaincodec/lt/lt"
	"github.com/fountaincodec/lt/wire"
)

func newEncodeCmd() *cobra.Command {
	var input string
	var outDir string
	var count int

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Chunk a file into source blocks and write encoded blocks to a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("encode: read input: %w", err)
			}

			blocks := chunkFile(data, cfg.K, cfg.BlockSize)
			source := make([]lt.SourceBlock, len(blocks))
			for i, b := range blocks {
				source[i] = lt.SourceBlock(b)
			}

			enc, err := lt.NewEncoder(source, cfg.MasterSeed, cfg.SolitonC, cfg.SolitonDelta)
			if err != nil {
				return fmt.Errorf("encode: new encoder: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("encode: create output directory: %w", err)
			}

			if count <= 0 {
				dist, _ := lt.NewDistribution(cfg.K, cfg.SolitonC, cfg.SolitonDelta)
				count = dist.EstimateBlocksNeeded() * 2
			}

			for i := 0; i < count; i++ {
				eb := enc.GenerateBlock(nil)
				path := filepath.Join(outDir, fmt.Sprintf("block-%05d.ltb", i))
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("encode: create %s: %w", path, err)
				}
				err = wire.WriteBlock(f, eb)
				closeErr := f.Close()
				if err != nil {
					return fmt.Errorf("encode: write %s: %w", path, err)
				}
				if closeErr != nil {
					return fmt.Errorf("encode: close %s: %w", path, closeErr)
				}
			}

			fmt.Printf("wrote %d encoded blocks to %s (source length %d bytes, k=%d, block_size=%d)\n",
				count, outDir, len(data), cfg.K, cfg.BlockSize)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "path to the file to encode")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory to write encoded blocks into")
	cmd.Flags().IntVar(&count, "count", 0, "number of encoded blocks to generate (0 = auto-estimate)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("out-dir")

	return cmd
}

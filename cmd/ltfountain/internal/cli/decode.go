package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fountaincodec/lt/lt"
	"github.com/fountaincodec/lt/wire"
)

func newDecodeCmd() *cobra.Command {
	var blocksDir string
	var output string
	var originalLen int

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Feed encoded blocks from a directory into a decoder and write the recovered file",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(blocksDir)
			if err != nil {
				return fmt.Errorf("decode: read %s: %w", blocksDir, err)
			}
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if !e.IsDir() {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)

			dec, err := lt.NewDecoder(cfg.K, cfg.BlockSize, cfg.SolitonC, cfg.SolitonDelta)
			if err != nil {
				return fmt.Errorf("decode: new decoder: %w", err)
			}

			accepted, mismatched := 0, 0
			for _, name := range names {
				if dec.IsComplete() {
					break
				}
				path := filepath.Join(blocksDir, name)
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("decode: open %s: %w", path, err)
				}
				eb, err := wire.ReadBlock(f, cfg.BlockSize)
				closeErr := f.Close()
				if err != nil {
					return fmt.Errorf("decode: parse %s: %w", path, err)
				}
				if closeErr != nil {
					return fmt.Errorf("decode: close %s: %w", path, closeErr)
				}

				result, err := dec.AddEncodedBlock(eb.Seed, eb.Degree, eb.Payload)
				if err != nil {
					return fmt.Errorf("decode: add %s: %w", path, err)
				}
				if result.SeedMismatch {
					mismatched++
					slog.Default().Warn("rejected block with seed/degree mismatch", slog.String("file", name))
					continue
				}
				accepted++
			}

			if !dec.IsComplete() {
				return fmt.Errorf("decode: incomplete after %d accepted blocks (%d mismatched): %d/%d source blocks recovered",
					accepted, mismatched, dec.DecodedCount(), cfg.K)
			}

			recoveredBlocks := dec.GetAllDecodedBlocks()
			words := make([]lt32, len(recoveredBlocks))
			for i, b := range recoveredBlocks {
				words[i] = []int32(b)
			}

			fullLen := len(words) * cfg.BlockSize * 4
			if originalLen <= 0 || originalLen > fullLen {
				originalLen = fullLen
			}

			data := reassembleFile(words, originalLen)
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("decode: write %s: %w", output, err)
			}

			fmt.Printf("recovered %d bytes to %s in %d peel rounds using %d blocks (%d mismatched)\n",
				len(data), output, dec.CurrentRound(), accepted, mismatched)
			return nil
		},
	}

	cmd.Flags().StringVar(&blocksDir, "blocks-dir", "", "directory of encoded blocks to read")
	cmd.Flags().StringVar(&output, "output", "", "path to write the recovered file")
	cmd.Flags().IntVar(&originalLen, "original-len", 0, "original file length in bytes (0 = full padded length)")
	cmd.MarkFlagRequired("blocks-dir")
	cmd.MarkFlagRequired("output")

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"almanac/internal/almanac"

	"github.com/spf13/cobra"
)

// arrayDeclaration matches the "name[...] = {" opening of a C array initializer
var arrayDeclaration = regexp.MustCompile(`\w+\s*\[[^\]\n]*\]\s*=\s*\{`)

func (a *app) newInspectCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show size, chunk count, CRC and CID of an almanac",
		Long: `Prints a JSON summary of an almanac image. The file may hold the raw
image or a generated header with the full_almanac literal; a file holding a
C array declaration is read as a header unless --raw is set. The CRC is the
value the LR1110 reports as global_almanac_crc once the image is loaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			img, err := loadImage(data, raw)
			if err != nil {
				return err
			}

			summary, err := almanac.Summarize(img)
			if err != nil {
				return fmt.Errorf("failed to summarize almanac: %w", err)
			}

			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "treat the file as the raw image even if it looks like a header")

	return cmd
}

// loadImage parses text holding a C array declaration as a generated header,
// anything else (or everything, when raw is set) as the image itself
func loadImage(data []byte, raw bool) (almanac.Image, error) {
	if raw || !isHeader(data) {
		return almanac.Image(data), nil
	}

	slog.Debug("Input looks like a C header, parsing array literal")
	img, err := almanac.ParseArrayLiteral(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse array literal: %w", err)
	}
	return img, nil
}

func isHeader(data []byte) bool {
	return utf8.Valid(data) && arrayDeclaration.Match(data)
}

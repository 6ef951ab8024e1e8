package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"almanac/internal/almanac"

	"github.com/spf13/cobra"
)

func (a *app) newFormatCmd() *cobra.Command {
	var isBase64 bool

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Print a local almanac image as a C array",
		Long: `Formats an almanac image already on disk, without calling the service.
Use "-" to read from stdin. With --base64 the input is the almanac_image
string as returned by the service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			img := almanac.Image(data)
			if isBase64 {
				raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
				if err != nil {
					return fmt.Errorf("failed to decode base64 input: %w", err)
				}
				img = raw
			}

			return a.printLiteral(img)
		},
	}
	cmd.Flags().BoolVar(&isBase64, "base64", false, "input is base64 text")
	addSizeFlag(cmd, &a.allowMismatch)

	return cmd
}

// readInput reads a file, or stdin when path is "-"
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mannequin/internal/domain/valueobjects"
)

func newEncodeCmd() *cobra.Command {
	var (
		asPNG  bool
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "encode FILE...",
		Short: "Print image files as data URLs",
		Long: `Encode image files as data URLs, ready for the modelImage and
garmentImage fields of POST /api/tryon. With --out-dir each payload is saved
as <name>.txt instead of printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				img, err := encodeFile(path, asPNG)
				if err != nil {
					return err
				}

				if outDir == "" {
					fmt.Fprintln(cmd.OutOrStdout(), img.String())
					continue
				}

				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				target := filepath.Join(outDir, name+".txt")
				if err := os.WriteFile(target, []byte(img.String()), 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asPNG, "png", false, "re-encode the pixels as PNG first")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "save each data URL to <dir>/<name>.txt")
	return cmd
}

func encodeFile(path string, asPNG bool) (*valueobjects.EncodedImage, error) {
	if !asPNG {
		return readImageFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// decoders are registered by the valueobjects package
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return valueobjects.EncodeDataURL("image/png", buf.Bytes())
}

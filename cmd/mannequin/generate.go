package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mannequin/internal/application/usecases"
	"mannequin/internal/config"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infrastructure/logging"
)

type generateOptions struct {
	modelPath   string
	garmentPath string
	language    string
	outPath     string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one try-on from the command line",
		Long: `Send a model photo and a garment photo to the image model once and
write the generated image. Without --out the result is printed as a data URL.`,
		Example: "  mannequin generate --model person.jpg --garment shirt.jpg --lang en --out result.png",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runGenerate(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.modelPath, "model", "", "photo of the person (required)")
	cmd.Flags().StringVar(&opts.garmentPath, "garment", "", "photo of the garment (required)")
	cmd.Flags().StringVar(&opts.language, "lang", "en", "prompt language: en or fa")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write the generated image to this file")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("garment")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, opts *generateOptions) error {
	lang, err := valueobjects.ParseLanguage(opts.language)
	if err != nil {
		return err
	}

	modelImage, err := readImageFile(opts.modelPath)
	if err != nil {
		return err
	}
	garmentImage, err := readImageFile(opts.garmentPath)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logging.NewLogger(cfg.AppEnv))
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := app.tryOn.Execute(ctx, usecases.TryOnInputFromImages(modelImage, garmentImage, lang))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	return writeResult(cmd, out.Image, opts.outPath)
}

func writeResult(cmd *cobra.Command, img *valueobjects.EncodedImage, outPath string) error {
	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), img.String())
		return err
	}

	data, err := img.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(data))
	return nil
}

// readImageFile encodes a file as a data URL, typed by its content.
func readImageFile(path string) (*valueobjects.EncodedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType, _, _ := strings.Cut(http.DetectContentType(data), ";")
	if !valueobjects.IsImageMIME(mimeType) {
		return nil, fmt.Errorf("%s: not an image (%s)", path, mimeType)
	}
	return valueobjects.EncodeDataURL(mimeType, data)
}

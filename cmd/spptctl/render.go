package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sppt/internal/config"
	"sppt/internal/domain"
	"sppt/internal/infra/logging"
	"sppt/internal/render"
)

const (
	formatPDF  = "pdf"
	formatHTML = "html"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	format     string
	output     string
	params     []string
	configPath string
}

func newRootCmd() *cobra.Command {
	var level string

	root := &cobra.Command{
		Use:          "spptctl",
		Short:        "Render SPPT property-tax notices",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLogLevel(level)
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "minimum log level")

	root.AddCommand(newRenderCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatPDF}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a notice to a PDF or HTML file",
		Example: `  spptctl render --param year=2024 --param nop=35.07.010.001 --param pbb_harus_dibayar=1500000
  spptctl render --format html --out notice.html --param name="Budi Santoso"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runRender(opts, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: pdf or html")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default: generated filename in the current directory)")
	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "notice field as key=value, repeatable")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config supplying document and pdf settings")
	return cmd
}

// runRender renders the notice and writes it, returning the written path.
func runRender(opts renderOpts, now time.Time) (string, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := loadConfig(opts.configPath)
		if err != nil {
			return "", err
		}
		cfg = loaded
	}

	params, err := parseParams(opts.params)
	if err != nil {
		return "", err
	}

	rendererOpts := []render.Option{
		render.WithClock(func() time.Time { return now }),
		render.WithLocation(cfg.Location()),
		render.WithCompression(cfg.PDF.Compress),
		render.WithValidation(cfg.PDF.ValidateOutput),
	}

	var r render.Renderer
	switch strings.ToLower(opts.format) {
	case formatPDF:
		r = render.NewPDFRenderer(rendererOpts...)
	case formatHTML:
		r = render.NewHTMLRenderer(rendererOpts...)
	default:
		return "", fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatPDF, formatHTML)
	}

	m := domain.BuildModel(params, now.In(cfg.Location()), domain.WithDefaultPaymentStatus(cfg.Document.DefaultPaymentStatus))
	doc, err := r.Render(m)
	if err != nil {
		return "", err
	}

	out := opts.output
	if out == "" {
		out = doc.Filename
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(out, doc.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", out, err)
	}
	logging.Info("Notice rendered", "path", out, "bytes", len(doc.Bytes))
	return out, nil
}

// loadConfig turns the panics of config.LoadFrom into an error for the CLI.
func loadConfig(path string) (cfg config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return config.LoadFrom(path), nil
}

func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --param %q: want key=value", pair)
		}
		params[strings.TrimSpace(key)] = value
	}
	return params, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-proposalpdf/internal/buildinfo"
	"go-proposalpdf/internal/config"
	"go-proposalpdf/internal/logging"
	"go-proposalpdf/internal/proposal"
	"go-proposalpdf/internal/server"
)

// cli holds flags shared by every command.
type cli struct {
	out        io.Writer
	configPath string
	logLevel   string
	template   string
	layout     string
}

func newRootCommand(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:          "proposalpdf",
		Short:        "proposalpdf stamps proposal data onto a PDF template",
		Long:         `proposalpdf serves an HTTP API that fills a fixed PDF template with client, item and payment details plus a product image. Run without a subcommand to start the server.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE:         c.runServe,
	}
	root.SetOut(out)
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "config.yaml", "path to the YAML config file")
	flags.StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&c.template, "template", "", "template PDF, overrides the config file")
	flags.StringVar(&c.layout, "layout", "", "layout file (.yaml or .toml), overrides the config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())

	return root
}

// load reads the config and applies command-line overrides.
func (c *cli) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.template != "" {
		cfg.Template = c.template
	}
	if c.layout != "" {
		cfg.Layout = c.layout
	}

	logger, err := logging.New(cfg.Logging, c.logLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  c.runServe,
	}
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := c.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := serve(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

func (c *cli) renderCommand() *cobra.Command {
	var (
		sets   []string
		image  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one proposal to a file without starting the server",
		Example: `  proposalpdf render --template modelo.pdf \
    --set client="Padaria Central" --set items="Caixa,Sacola" --set values="10,20" \
    --set total=30 --image produto.png --output proposta.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			var img []byte
			if image != "" {
				img, err = os.ReadFile(image)
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}
			}

			cfg, logger, err := c.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc, err := server.NewService(cfg, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			doc, err := svc.Generate(ctx, proposal.FromValues(values, img))
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, doc, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(c.out, "wrote %s (%d bytes)\n", output, len(doc))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field value as key=value (repeatable)")
	cmd.Flags().StringVar(&image, "image", "", "PNG or JPEG product image")
	cmd.Flags().StringVarP(&output, "output", "o", "proposta.pdf", "output PDF path")
	return cmd
}

// parseSets turns key=value flags into canonical field values.
func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", s)
		}
		f, found := proposal.Lookup(strings.TrimSpace(key))
		if !found || f.Kind == proposal.KindImage {
			return nil, fmt.Errorf("unknown field %q", key)
		}
		values[f.Key] = value
	}
	return values, nil
}

func (c *cli) layoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the effective layout as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.layout != "" {
				cfg.Layout = c.layout
			}

			l, err := server.LoadLayout(cfg)
			if err != nil {
				return err
			}
			if err := l.Validate(proposal.IsTextField); err != nil {
				return err
			}

			enc := yaml.NewEncoder(c.out)
			enc.SetIndent(2)
			if err := enc.Encode(l); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/recipebox/internal"
	pkgconfig "github.com/starford/recipebox/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx,
		internal.WithConfig(cfg),
		internal.WithVersion(version),
		internal.WithLogOutput(os.Stderr),
	)
}

func importRecipes(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := internal.Import(ctx, internal.WithConfig(cfg), internal.WithDir(cmd.String("dir")))
	if err != nil {
		return err
	}
	if st.Failed > 0 {
		return fmt.Errorf("%d recipe files could not be imported", st.Failed)
	}
	return nil
}

func exportRecipes(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, err = internal.Export(ctx, internal.WithConfig(cfg), internal.WithDir(cmd.String("dir")))
	return err
}

func dirFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   usage,
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "recipebox",
		Usage:   "Recipe and comment API backed by SQLite or PostgreSQL",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve recipe tools over MCP stdio",
				Action: serveMCP,
			},
			{
				Name:   "import",
				Usage:  "Import recipe files (.md, .yaml) from a directory",
				Flags:  []cli.Flag{dirFlag("Directory to import (defaults to import.dir)")},
				Action: importRecipes,
			},
			{
				Name:   "export",
				Usage:  "Write every recipe as a Markdown file",
				Flags:  []cli.Flag{dirFlag("Directory to write (defaults to import.dir)")},
				Action: exportRecipes,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

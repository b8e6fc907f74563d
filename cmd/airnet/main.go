// Package main is the entry point for the airnet CLI.
// Its sole responsibility is wiring dependencies together and dispatching
// commands. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/config"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/fpl"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/repo"
	"github.com/antarctica/bas-air-unit-network-dataset/internal/service"
)

func main() {
	cfg := config.Load()

	// log/slog is the stdlib structured logger introduced in Go 1.21.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	app := newApp(cfg, logger)
	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp(cfg config.Config, logger *slog.Logger) *cli.App {
	datasetFlag := &cli.StringFlag{
		Name:  "dataset",
		Usage: "path to the network dataset file",
		Value: cfg.DatasetPath,
	}

	return &cli.App{
		Name:  "airnet",
		Usage: "manage the BAS Air Unit travel network of waypoints and routes",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create an empty network dataset",
				Flags: []cli.Flag{datasetFlag},
				Action: func(c *cli.Context) error {
					return runInit(c.Context, c.String("dataset"), logger)
				},
			},
			{
				Name:  "import",
				Usage: "replace the dataset contents with a GPX file",
				Flags: []cli.Flag{
					datasetFlag,
					&cli.StringFlag{
						Name:  "input",
						Usage: "path to the GPX file to import",
						Value: cfg.InputPath,
					},
				},
				Action: func(c *cli.Context) error {
					return runImport(c.Context, c.String("dataset"), c.String("input"), logger)
				},
			},
			{
				Name:  "export",
				Usage: "export the network as CSV, GPX and FPL products",
				Flags: []cli.Flag{
					datasetFlag,
					&cli.StringFlag{
						Name:  "output",
						Usage: "directory to write exports under",
						Value: cfg.OutputPath,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "format to export: csv, gpx, fpl or all",
						Value: "all",
					},
				},
				Action: func(c *cli.Context) error {
					return runExport(c.Context, c.String("dataset"), c.String("output"), c.String("format"), logger)
				},
			},
			{
				Name:  "inspect",
				Usage: "print a summary of the dataset contents",
				Flags: []cli.Flag{datasetFlag},
				Action: func(c *cli.Context) error {
					return runInspect(c.Context, c.String("dataset"))
				},
			},
		},
	}
}

// openNetwork opens an existing dataset and builds the service stack over
// it. The caller closes the returned handle.
func openNetwork(dataset string, logger *slog.Logger) (*sql.DB, *service.NetworkService, error) {
	if dataset == "" {
		return nil, nil, fmt.Errorf("dataset path required: set --dataset or AIRNET_DATASET_PATH")
	}
	if _, err := os.Stat(dataset); err != nil {
		return nil, nil, fmt.Errorf("dataset %q not found: run init first", dataset)
	}

	handle, err := repo.Open(dataset)
	if err != nil {
		return nil, nil, err
	}
	network := service.NewNetworkService(repo.NewStore(handle), logger)
	return handle, network, nil
}

func runInit(ctx context.Context, dataset string, logger *slog.Logger) error {
	if dataset == "" {
		return fmt.Errorf("dataset path required: set --dataset or AIRNET_DATASET_PATH")
	}
	if _, err := os.Stat(dataset); err == nil {
		return fmt.Errorf("dataset %q already exists", dataset)
	}
	if err := os.MkdirAll(filepath.Dir(dataset), 0o755); err != nil {
		return err
	}

	handle, err := repo.Open(dataset)
	if err != nil {
		return err
	}
	defer handle.Close()

	if err := repo.Migrate(handle); err != nil {
		return err
	}
	logger.Info("dataset created", "path", dataset)
	return nil
}

func runImport(ctx context.Context, dataset, input string, logger *slog.Logger) error {
	if input == "" {
		return fmt.Errorf("input path required: set --input or AIRNET_INPUT_PATH")
	}

	handle, network, err := openNetwork(dataset, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	importer := service.NewImportService(network, logger)
	return importer.ImportGPX(ctx, input)
}

func runExport(ctx context.Context, dataset, output, format string, logger *slog.Logger) error {
	handle, networkSvc, err := openNetwork(dataset, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	network, err := networkSvc.Load(ctx)
	if err != nil {
		return err
	}

	exporter := service.NewExportService(fpl.XMLLintValidator{}, logger)
	switch format {
	case "csv":
		return exporter.ExportCSV(network, output)
	case "gpx":
		return exporter.ExportGPX(network, output)
	case "fpl":
		return exporter.ExportFPL(ctx, network, output)
	case "all":
		return exporter.ExportAll(ctx, network, output)
	default:
		return fmt.Errorf("unknown format %q: expected csv, gpx, fpl or all", format)
	}
}

func runInspect(ctx context.Context, dataset string) error {
	handle, networkSvc, err := openNetwork(dataset, slog.Default())
	if err != nil {
		return err
	}
	defer handle.Close()

	network, err := networkSvc.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Println(network)
	fmt.Println()
	fmt.Println("Waypoints:")
	for _, w := range network.Waypoints.Waypoints() {
		fmt.Printf("  %s\n", w)
	}
	fmt.Println()
	fmt.Println("Routes:")
	for _, r := range network.Routes.Routes() {
		fmt.Printf("  %s\n", r)
	}
	return nil
}

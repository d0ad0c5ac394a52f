package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mtocli/internal/app"
	"mtocli/internal/config"
	"mtocli/internal/infrastructure"
)

func main() {
	master := flag.String("master", "", "path to the master parts workbook (.xlsx)")
	out := flag.String("out", "", "path for the generated MTO workbook (defaults to the configured output)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *out == "" {
		*out = cfg.Output.Workbook
	}

	reader := bufio.NewReader(os.Stdin)
	if *master == "" {
		*master = prompt(reader, "Master parts workbook path: ")
	}
	if *master == "" {
		logger.Error("no master workbook given")
		os.Exit(1)
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = promptList(reader, "Type file path (blank line to finish): ")
	}
	if len(inputs) == 0 {
		logger.Error("no type files given")
		os.Exit(1)
	}

	logger.Info("Starting MTO generation",
		slog.String("master", *master),
		slog.Int("files", len(inputs)),
		slog.String("output", *out))

	if err := app.New(logger).Run(*master, inputs, *out); err != nil {
		logger.Error("MTO generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("MTO generation complete", slog.String("output", *out))
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Fprint(os.Stderr, label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func promptList(reader *bufio.Reader, label string) []string {
	var out []string
	for {
		line := prompt(reader, label)
		if line == "" {
			return out
		}
		out = append(out, line)
	}
}

// Command kmeans clusters the points read from stdin and prints the final centroids.
//
//	kmeans K [max_iter] < points.txt
//
// Each input line holds one point as comma-separated numbers. The output has
// one line per centroid with every coordinate printed to four decimals.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yyyoichi/kmeans"
	"github.com/yyyoichi/kmeans/internal/config"
	"github.com/yyyoichi/kmeans/internal/dataset"
	"github.com/yyyoichi/kmeans/internal/format"
)

const (
	msgClusterCount = "Incorrect number of clusters!"
	msgMaxIter      = "Incorrect maximum iteration!"
	msgGeneric      = "An Error Has Occurred"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command and returns the process exit code.
// Failures are reported on stdout with one of three fixed messages.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(positionalAfterFlags(cmd, args))
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stdout, message(err))
		return 1
	}
	return 0
}

// positionalAfterFlags moves the positional arguments behind a "--" so that
// negative numbers such as "-3" reach run instead of being parsed as flags.
// Flags and their values keep their relative order.
func positionalAfterFlags(cmd *cobra.Command, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case len(a) < 2 || a[0] != '-' || isNumeric(a[1:]):
			positional = append(positional, a)
		default:
			flags = append(flags, a)
			if name, ok := strings.CutPrefix(a, "--"); ok && !strings.Contains(name, "=") && i+1 < len(args) {
				if f := cmd.Flags().Lookup(name); f != nil && f.NoOptDefVal == "" {
					i++
					flags = append(flags, args[i])
				}
			}
		}
	}
	return append(append(flags, "--"), positional...)
}

func isNumeric(s string) bool {
	return s != "" && (s[0] == '.' || isDigit(s[0]))
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// isDigits reports whether s is a non-empty run of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func message(err error) string {
	switch {
	case errors.Is(err, kmeans.ErrInvalidClusterCount):
		return msgClusterCount
	case errors.Is(err, kmeans.ErrInvalidMaxIter):
		return msgMaxIter
	default:
		return msgGeneric
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kmeans K [max_iter]",
		Short: "Cluster points from stdin with K-means",
		Long: `kmeans reads one point per line from stdin, partitions the points into K
clusters with Lloyd's algorithm and prints the K final centroids.

The first K points seed the centroids. The run stops when no centroid moves
by epsilon or more, or after max_iter iterations (default 400).`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          run,
	}
	cmd.Flags().String("config", "", "YAML config file")
	cmd.Flags().Float64("epsilon", kmeans.DefaultEpsilon, "convergence threshold on centroid movement")
	cmd.Flags().String("log-level", "", "log level on stderr (debug, info, warn, error)")
	cmd.Flags().Bool("labels", false, "print the cluster label of every point after the centroids")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if !isDigits(args[0]) {
		return fmt.Errorf("%w: k=%q", kmeans.ErrInvalidClusterCount, args[0])
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w:%w", kmeans.ErrInvalidClusterCount, err)
	}
	if k <= 1 {
		return fmt.Errorf("%w: k=%d", kmeans.ErrInvalidClusterCount, k)
	}
	var maxIter int
	if len(args) == 2 {
		if maxIter, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("%w:%w", kmeans.ErrInvalidMaxIter, err)
		}
		// The upper bound depends on the configured ceiling and is checked by kmeans.New.
		if maxIter <= 1 {
			return fmt.Errorf("%w: max_iter=%d", kmeans.ErrInvalidMaxIter, maxIter)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		maxIter = cfg.MaxIter
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	km, err := kmeans.New(k,
		kmeans.WithMaxIter(maxIter),
		kmeans.WithIterationCeiling(cfg.IterationCeiling),
		kmeans.WithEpsilon(cfg.Epsilon),
		kmeans.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ds, err := dataset.Read(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("%w:%w", kmeans.ErrInvalidInput, err)
	}
	logger.Debug("read points", "n", ds.Len(), "dim", ds.Dim())

	res, err := km.Fit(ds.Points())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := format.WriteCentroids(out, res.Centroids); err != nil {
		return err
	}
	if printLabels, _ := cmd.Flags().GetBool("labels"); printLabels {
		return format.WriteLabels(out, res.Labels)
	}
	return nil
}

// loadConfig resolves defaults, the config file, the environment and flags,
// in increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Epsilon, _ = cmd.Flags().GetFloat64("epsilon")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

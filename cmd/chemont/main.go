// Package main provides the chemont binary: compound assignment to
// chemical structure classes in an ontology.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/hupe1980/chemont"
	"github.com/hupe1980/chemont/blobstore"
	"github.com/hupe1980/chemont/blobstore/minio"
	"github.com/hupe1980/chemont/blobstore/s3"
	"github.com/hupe1980/chemont/chem"

	miniosdk "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	cfg     chemont.RunConfig
	verbose bool

	s3Bucket      string
	s3Prefix      string
	minioEndpoint string
	minioBucket   string
	oracleRate    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chemont",
		Short: "Assign compounds to chemical structure classes in an ontology",
		Long: `chemont classifies chemical compounds against a hierarchical
structure-class ontology. Each ontology concept carries SMARTS pattern
expressions; a compound is assigned to a concept when its expression
set matches and all parent concepts matched as well. The report lists
the most specific classes per compound (or all consistent classes with
--mode all).`,
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.Module, "module", "m", chem.ModuleLiteral,
		fmt.Sprintf("chemistry backend, one of: %s", strings.Join(chem.Known(), ", ")))
	flags.StringVarP(&cfg.OntologyFile, "obo", "c", "", "ontology file with chemical classes")
	flags.StringVarP(&cfg.CompoundFile, "smiles-id", "s", "", "TAB-separated file with SMILES and IDs")
	flags.StringVarP(&cfg.OutputFile, "output-file", "o", "", "assignment output file (.gz compresses)")
	flags.StringVar(&cfg.StatsFile, "stats-file", "", "optional per-concept statistics file")
	flags.IntVarP(&cfg.Threads, "threads", "t", 1, "number of classification workers")
	flags.StringVar(&cfg.Mode, "mode", "leaves", "report mode: leaves (most specific) or all")
	flags.IntVar(&cfg.MaxCompounds, "max-compounds", 0, "cap on compounds to process (0 = all)")
	flags.BoolVar(&cfg.Aromatic, "aromatic", false, "apply aromaticity perception before matching")
	flags.BoolVar(&cfg.Echo, "echo", false, "also print assignments to stdout")
	flags.BoolVar(&cfg.AppendModuleSuffix, "append-module-suffix", false,
		"append _<module>.tsv to the output filename")
	flags.Float64Var(&oracleRate, "oracle-rate", 0, "max oracle calls per second (0 = unlimited)")

	flags.StringVar(&s3Bucket, "s3-bucket", "", "read/write all files in this S3 bucket")
	flags.StringVar(&s3Prefix, "s3-prefix", "", "key prefix inside the S3 bucket")
	flags.StringVar(&minioEndpoint, "minio-endpoint", "", "MinIO endpoint (host:port)")
	flags.StringVar(&minioBucket, "minio-bucket", "", "read/write all files in this MinIO bucket")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = rootCmd.MarkFlagRequired("obo")
	_ = rootCmd.MarkFlagRequired("smiles-id")
	_ = rootCmd.MarkFlagRequired("output-file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := chemont.NewTextLogger(level)

	store, err := buildStore(ctx)
	if err != nil {
		return err
	}

	opts := []chemont.Option{
		chemont.WithLogger(logger),
		chemont.WithStore(store),
	}
	if oracleRate > 0 {
		opts = append(opts, chemont.WithRateLimiter(rate.NewLimiter(rate.Limit(oracleRate), 1)))
	}

	summary, err := chemont.Run(ctx, cfg, opts...)
	if err != nil {
		logger.ErrorContext(ctx, "assignment failed", "error", err)
		return err
	}

	fmt.Fprintf(os.Stderr, "classified %d compounds against %d concepts in %s\n",
		summary.Compounds, summary.Concepts, summary.Elapsed.Round(10*time.Millisecond))
	return nil
}

func buildStore(ctx context.Context) (blobstore.Store, error) {
	switch {
	case s3Bucket != "":
		return s3.NewFromDefaultConfig(ctx, s3Bucket, s3Prefix)
	case minioEndpoint != "":
		if minioBucket == "" {
			return nil, fmt.Errorf("--minio-bucket is required with --minio-endpoint")
		}
		client, err := miniosdk.New(minioEndpoint, &miniosdk.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: true,
		})
		if err != nil {
			return nil, fmt.Errorf("minio: connect %s: %w", minioEndpoint, err)
		}
		return minio.New(client, minioBucket, ""), nil
	default:
		return blobstore.NewLocal(""), nil
	}
}

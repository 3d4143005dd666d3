package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/cksum"
	"github.com/hupe1980/cksum/internal/kernel"
	"github.com/hupe1980/cksum/manifest"
	"github.com/hupe1980/cksum/source"
	miniosource "github.com/hupe1980/cksum/source/minio"
	s3source "github.com/hupe1980/cksum/source/s3"
)

// errFailures signals a nonzero exit after per-input diagnostics have
// already been printed.
var errFailures = errors.New("some inputs failed")

type cliConfig struct {
	Algorithm string `yaml:"algorithm"`
	Kernel    string `yaml:"kernel"`
	Jobs      int    `yaml:"jobs"`
	S3        struct {
		Enabled bool   `yaml:"enabled"`
		Profile string `yaml:"profile"`
		Region  string `yaml:"region"`
	} `yaml:"s3"`
	MinIO struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
		UseSSL    bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

type cliFlags struct {
	algorithm  string
	kernelName string
	checkFile  string
	configFile string
	jobs       int
	raw        bool
	zero       bool
	decompress bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:   "cksum [file...]",
		Short: "Print CRC checksum and byte counts",
		Long: `Print the POSIX CRC-32 checksum and byte count of each file.

With no file, or when file is -, read standard input. Output is
"<sum> <length> <name>" per input (two fields for standard input).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.algorithm, "algorithm", "a", "crc", "checksum algorithm (crc, crc32b)")
	cmd.Flags().StringVar(&flags.kernelName, "kernel", "", "force a computation engine (slice8, chorba, fold128, fold256, fold512)")
	cmd.Flags().StringVarP(&flags.checkFile, "check", "c", "", "verify checksums from a manifest file")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "YAML config file for defaults and remote backends")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of inputs to process concurrently")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "emit the raw 4-byte big-endian checksum (single input only)")
	cmd.Flags().BoolVarP(&flags.zero, "zero", "z", false, "end each output line with NUL instead of newline")
	cmd.Flags().BoolVar(&flags.decompress, "decompress", false, "transparently decompress .zst/.gz/.lz4 inputs")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging to stderr")

	return cmd
}

func run(cmd *cobra.Command, flags *cliFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var cfg cliConfig
	if flags.configFile != "" {
		raw, err := os.ReadFile(flags.configFile)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("config %s: %w", flags.configFile, err)
		}
	}

	// Config supplies defaults; explicit flags win.
	if cfg.Algorithm != "" && !cmd.Flags().Changed("algorithm") {
		flags.algorithm = cfg.Algorithm
	}
	if cfg.Kernel != "" && !cmd.Flags().Changed("kernel") {
		flags.kernelName = cfg.Kernel
	}
	if cfg.Jobs > 0 && !cmd.Flags().Changed("jobs") {
		flags.jobs = cfg.Jobs
	}

	logger := cksum.NoopLogger()
	if flags.debug {
		logger = cksum.NewTextLogger(slog.LevelDebug)
	}

	opts, err := buildOptions(ctx, flags, &cfg, logger)
	if err != nil {
		return err
	}

	if flags.checkFile != "" {
		return runCheck(ctx, cmd, flags, opts)
	}
	if flags.raw {
		return runRaw(ctx, cmd, args, opts)
	}
	return runSum(ctx, cmd, flags, args, opts)
}

func buildOptions(ctx context.Context, flags *cliFlags, cfg *cliConfig, logger *cksum.Logger) ([]cksum.Option, error) {
	alg, err := cksum.ParseAlgorithm(flags.algorithm)
	if err != nil {
		return nil, err
	}

	opts := []cksum.Option{
		cksum.WithAlgorithm(alg),
		cksum.WithLogger(logger),
	}

	if flags.kernelName != "" {
		k, ok := kernel.ParseKind(flags.kernelName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", cksum.ErrUnknownKernel, flags.kernelName)
		}
		opts = append(opts, cksum.WithKernel(k))
		logger.Debug("kernel forced", "kernel", k.String())
	} else {
		caps := kernel.Detect()
		logger.Debug("capabilities detected",
			"caps", fmt.Sprintf("%05b", caps),
			"kernel", kernel.Select(caps).String(),
		)
	}

	if flags.jobs > 0 {
		opts = append(opts, cksum.WithConcurrency(flags.jobs))
	}

	resolver := source.NewResolver(source.NewFS(source.WithDecompression(flags.decompress)))
	if cfg.S3.Enabled {
		var optFns []func(*awsconfig.LoadOptions) error
		if cfg.S3.Profile != "" {
			optFns = append(optFns, awsconfig.WithSharedConfigProfile(cfg.S3.Profile))
		}
		if cfg.S3.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(cfg.S3.Region))
		}
		src, err := s3source.NewFromConfig(ctx, optFns...)
		if err != nil {
			return nil, fmt.Errorf("s3: %w", err)
		}
		resolver.Register("s3", src)
	}
	if cfg.MinIO.Endpoint != "" {
		client, err := miniogo.New(cfg.MinIO.Endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		resolver.Register("minio", miniosource.New(client))
	}
	opts = append(opts, cksum.WithSource(resolver))

	return opts, nil
}

func runSum(ctx context.Context, cmd *cobra.Command, flags *cliFlags, args []string, opts []cksum.Option) error {
	delim := byte('\n')
	if flags.zero {
		delim = 0
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	failed := false
	for _, fr := range cksum.SumFiles(ctx, args, opts...) {
		if fr.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cksum: %s: %v\n", fr.Name, fr.Err)
			failed = true
			continue
		}
		e := manifest.Entry{Sum: fr.Sum, Length: fr.Length, Name: fr.Name}
		if fr.Name == "-" {
			e.Name = ""
		}
		fmt.Fprint(cmd.OutOrStdout(), manifest.FormatEntry(e, delim))
	}
	if failed {
		return errFailures
	}
	return nil
}

func runRaw(ctx context.Context, cmd *cobra.Command, args []string, opts []cksum.Option) error {
	if len(args) > 1 {
		return errors.New("--raw supports a single input")
	}
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}

	res, err := cksum.SumFile(ctx, name, opts...)
	if err != nil {
		return err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], res.Sum)
	_, err = cmd.OutOrStdout().Write(buf[:])
	return err
}

func runCheck(ctx context.Context, cmd *cobra.Command, flags *cliFlags, opts []cksum.Option) error {
	var in io.ReadCloser
	if flags.checkFile == "-" {
		in = io.NopCloser(cmd.InOrStdin())
	} else {
		f, err := os.Open(flags.checkFile)
		if err != nil {
			return err
		}
		in = f
	}
	entries, err := manifest.Parse(in)
	cerr := in.Close()
	if err != nil {
		return err
	}
	if cerr != nil {
		return cerr
	}

	failed := false
	for _, vr := range manifest.Verify(ctx, entries, opts...) {
		switch {
		case vr.Err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "cksum: %s: %v\n", vr.Entry.Name, vr.Err)
			failed = true
		case !vr.OK:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED\n", vr.Entry.Name)
			failed = true
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", vr.Entry.Name)
		}
	}
	if failed {
		return errFailures
	}
	return nil
}

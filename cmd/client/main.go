package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janisto/hello-world-api/internal/client"
	"github.com/janisto/hello-world-api/internal/platform/logging"
)

// defaultServiceURL is the deployed Cloud Run service, also used as the token audience.
const defaultServiceURL = "https://fastapi-hello-world-crpxn6ivgq-uw.a.run.app"

const (
	urlFlag            = "url"
	urlFlagDescription = "Service URL to call; also the identity token audience."

	gcloudFlag            = "gcloud"
	gcloudFlagDescription = "Credential tool used to print the identity token."
)

type clientOpts struct {
	url    string
	gcloud string
}

func main() {
	logger := logging.NewConsole(os.Stderr, zapcore.WarnLevel)
	defer func() { _ = logger.Sync() }()

	if code := execute(context.Background(), os.Args[1:], color.Output, color.Error, logger); code != 0 {
		_ = logger.Sync()
		os.Exit(code)
	}
}

// execute runs the root command with args and returns the process exit code.
// Token failures are already reported by the command itself; any other error,
// such as an unknown flag, is printed to errOut.
func execute(ctx context.Context, args []string, out, errOut io.Writer, logger *zap.Logger) int {
	cmd := newRootCmd(out, logger)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, client.ErrNoToken) {
		fmt.Fprintln(errOut, color.HiRedString("Error:"), err.Error())
	}
	return 1
}

func newRootCmd(out io.Writer, logger *zap.Logger) *cobra.Command {
	opts := clientOpts{}
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Call the Hello World service with a Google identity token.",
		Long: `Fetches an identity token for the service URL with gcloud and calls
the root, health and version endpoints with it.`,
		Example: `
  Call the default deployment.
  /code $ client
  Call another revision.
  /code $ client --url https://hello-world-abc123-uw.a.run.app`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClient(cmd.Context(), opts, out, logger)
		},
	}
	bindFlags(cmd.Flags(), &opts)
	cmd.SetOut(out)
	return cmd
}

func bindFlags(fs *pflag.FlagSet, opts *clientOpts) {
	fs.StringVar(&opts.url, urlFlag, defaultServiceURL, urlFlagDescription)
	fs.StringVar(&opts.gcloud, gcloudFlag, client.DefaultTokenCommand, gcloudFlagDescription)
}

func runClient(ctx context.Context, opts clientOpts, out io.Writer, logger *zap.Logger) error {
	fmt.Fprintln(out, "Getting identity token...")
	token, err := client.NewTokenSource(opts.gcloud, logger).Token(ctx, opts.url)
	if err != nil {
		fmt.Fprintln(out, color.HiRedString("Error getting identity token: %v", err))
		fmt.Fprintln(out, "Failed to get identity token")
		return err
	}

	fmt.Fprintln(out, "Testing Cloud Run service...")
	if err := client.NewExerciser(nil, out).Exercise(ctx, opts.url, token); err != nil {
		// Request failures are already printed; they do not fail the run.
		logger.Warn("some requests failed", zap.Error(err))
	}
	return nil
}

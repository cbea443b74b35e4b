/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nscale/foody-smoke/pkg/foody"
	"github.com/nscale/foody-smoke/pkg/openapi"
	"github.com/nscale/foody-smoke/pkg/smoke"
	"github.com/nscale/foody-smoke/pkg/twin"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

const application = "foody-smoke"

var (
	// Set by the linker.
	version  = "0.0.0" //nolint:gochecknoglobals
	revision = "dev"   //nolint:gochecknoglobals
)

var errScenariosFailed = errors.New("smoke scenarios failed")

type globalOptions struct {
	verbosity int
}

func (o *globalOptions) setupLogging() error {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.Level(-o.verbosity))
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return err
	}

	log.SetLogger(zapr.NewLogger(logger))

	return nil
}

func newRootCommand() *cobra.Command {
	options := &globalOptions{}

	cmd := &cobra.Command{
		Use:           application,
		Short:         "Smoke test the Foody review API",
		Version:       fmt.Sprintf("%s (%s)", version, revision),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return options.setupLogging()
		},
	}

	cmd.PersistentFlags().IntVar(&options.verbosity, "verbosity", 0, "Log verbosity, 1 logs request traffic.")

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newTwinCommand())

	return cmd
}

func newRunCommand() *cobra.Command {
	// Flags default to the environment, so it is loaded before they are
	// registered and validated again once they are parsed.
	config, loadErr := smoke.LoadConfig()
	if loadErr != nil {
		config = &smoke.Config{}
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ordered smoke workflow and exit non-zero on any failure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if loadErr != nil {
				return loadErr
			}

			if err := config.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cmd, config)
		},
	}

	config.AddFlags(cmd.Flags())

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, config *smoke.Config) error {
	logger := log.Log.WithName("run")

	baseURL := config.BaseURL

	if config.UseTwin() {
		t, err := twin.New(twin.WithUser(config.Username, config.Password), twin.WithLogger(log.Log.WithName("twin")))
		if err != nil {
			return err
		}

		server := httptest.NewServer(t)
		defer server.Close()

		baseURL = server.URL

		logger.Info("no base URL configured, using in-memory twin", "url", baseURL)
	}

	client, err := newClient(config, baseURL, logger)
	if err != nil {
		return err
	}

	runner := smoke.NewClientRunner(client, smoke.WithLogger(logger))
	defer runner.Teardown()

	if err := runner.Setup(ctx, config.Credentials()); err != nil {
		return err
	}

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, result := range report.Results {
		line := fmt.Sprintf("%d. %-40s %s", result.Order, result.Name, result.Outcome)
		if result.Err != nil {
			line += ": " + result.Err.Error()
		}

		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out, report.Summary())

	if !report.Passed() {
		return fmt.Errorf("%w: %w", errScenariosFailed, report.Err())
	}

	return nil
}

func newClient(config *smoke.Config, baseURL string, logger logr.Logger) (*foody.Client, error) {
	options := []foody.Option{
		foody.WithTimeout(config.RequestTimeout),
		foody.WithLogger(logger),
		foody.WithRequestLogging(config.LogRequests, config.LogResponses),
	}

	if config.ValidateResponses {
		schema, err := openapi.Load()
		if err != nil {
			return nil, err
		}

		options = append(options, foody.WithResponseValidator(schema))
	}

	return foody.New(baseURL, options...), nil
}

type twinOptions struct {
	listen   string
	username string
	password string
	seedFile string
}

func newTwinCommand() *cobra.Command {
	options := &twinOptions{}

	cmd := &cobra.Command{
		Use:   "twin",
		Short: "Serve an in-memory Foody API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveTwin(cmd.Context(), options)
		},
	}

	cmd.Flags().StringVar(&options.listen, "listen", ":8086", "Address to listen on.")
	cmd.Flags().StringVar(&options.username, "username", smoke.DefaultUsername, "Account accepted by the login endpoint.")
	cmd.Flags().StringVar(&options.password, "password", smoke.DefaultPassword, "Password of the account.")
	cmd.Flags().StringVar(&options.seedFile, "seed", "", "YAML file of users and foods to start with.")

	return cmd
}

func serveTwin(ctx context.Context, options *twinOptions) error {
	logger := log.Log.WithName("twin")

	serveOptions := []twin.Option{
		twin.WithUser(options.username, options.password),
		twin.WithLogger(logger),
	}

	if options.seedFile != "" {
		seed, err := twin.LoadSeedFile(options.seedFile)
		if err != nil {
			return err
		}

		serveOptions = append(serveOptions, twin.WithSeed(seed))

		logger.Info("loaded seed data", "file", options.seedFile, "users", len(seed.Users), "foods", len(seed.Foods))
	}

	t, err := twin.New(serveOptions...)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              options.listen,
		Handler:           t,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "twin shutdown failed")
		}
	}()

	logger.Info("serving", "listen", options.listen)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func main() {
	ctx := signals.SetupSignalHandler()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// annotationOffline marks commands that run without a client.
const annotationOffline = "offline"

// ClientFactory opens a client for cfg.
type ClientFactory func(cfg *config.Config) (client.Client, error)

// DefaultClientFactory connects over gRPC and keeps the session in
// cfg.SessionFile.
func DefaultClientFactory(cfg *config.Config) (client.Client, error) {
	return client.NewTaskKeeperClient(cfg.ServerEndpointAddr, session.NewFileStore(cfg.SessionFile))
}

type App struct {
	newClient ClientFactory
	reader    *bufio.Reader
	out       io.Writer

	config *config.Config
	client client.Client
}

func NewApp(factory ClientFactory, in io.Reader, out io.Writer) *App {
	return &App{newClient: factory, reader: bufio.NewReader(in), out: out}
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:                "taskkeeper",
		Short:              "TaskKeeper command-line client",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.connect,
		PersistentPostRunE: a.release,
	}
	root.SetOut(a.out)
	config.AddFlags(root.PersistentFlags())

	root.AddCommand(
		a.versionCmd(),
		a.pingCmd(),
		a.registerCmd(),
		a.loginCmd(),
		a.refreshCmd(),
		a.logoutCmd(),
		a.taskCmd(),
	)
	return root
}

// Execute runs the command line args and closes the client afterwards,
// including when the command failed.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.disconnect(); err == nil {
		err = cerr
	}
	return describe(err)
}

func (a *App) connect(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationOffline] == "true" {
		return nil
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	c, err := a.newClient(cfg)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.ServerEndpointAddr, err)
	}
	a.config = cfg
	a.client = c
	return nil
}

func (a *App) release(*cobra.Command, []string) error {
	return a.disconnect()
}

func (a *App) disconnect() error {
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}

// requestContext bounds a single request by the configured timeout.
func (a *App) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.config.RequestTimeout)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// describe adds a hint to errors the user can act on.
func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("%w: is the server running?", err)
	case errors.Is(err, client.ErrNotLoggedIn), errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("%w: run 'taskkeeper login'", err)
	default:
		return err
	}
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{annotationOffline: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			a.printf("taskkeeper %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/plx/cli/cmd"
	"github.com/ardnew/plx/intent"
	"github.com/ardnew/plx/pkg"
)

// CLI is the top-level command-line interface for plx.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Backend   intent.Backend `default:"shell" help:"Render backend (shell, html, ncom, python)." short:"b"`
	Catalogue []string       `help:"YAML package catalogue(s) to add to the package store." placeholder:"FILE" type:"existingfile"`

	Tokens  cmd.Tokens  `cmd:"" help:"Print the token stream."`
	AST     cmd.AST     `cmd:"" help:"Print the syntax tree."                name:"ast"`
	Resolve cmd.Resolve `cmd:"" help:"Resolve statements to intents." default:"withargs"`
	Check   cmd.Check   `cmd:"" help:"Report diagnostics without resolving."`
	Intents cmd.Intents `cmd:"" help:"List the intent catalogue."`
	Pkg     cmd.Pkg     `cmd:"" help:"Query and install packages."`
	REPL    cmd.REPL    `cmd:"" help:"Start an interactive session."         name:"repl"`
	Init    cmd.Init    `cmd:"" help:"Initialize configuration file."`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`
}

// Run executes the plx CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(baseConfig+".json")),
		kong.Configuration(resolve(pkg.Name), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values, including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	session, err := cmd.NewSession(ctx, cli.Backend, cli.Catalogue...)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSession(ctx, session)

	return ktx.Run()
}

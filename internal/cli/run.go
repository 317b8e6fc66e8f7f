package cli

import (
	"fmt"
	"io"

	"github.com/calvinalkan/bills/internal/bill"
	"github.com/calvinalkan/bills/internal/config"
	"github.com/calvinalkan/bills/internal/logging"
	"github.com/calvinalkan/bills/internal/prompt"

	flag "github.com/spf13/pflag"
)

const longHelp = `Interactive bill tracker. Bills live in memory for the session only.

Menu:
  1  Add a bill (name, amount)
  2  View all bills
  3  Remove a bill by name
  4  Update the amount of a bill

An empty line at the menu ends the session; any other input ends it
with "Invalid menu". An empty line while adding, removing or updating
cancels that action.

Config is read from $XDG_CONFIG_HOME/bills/config.json
(or ~/.config/bills/config.json) and then from --config.`

type runFlags struct {
	configPath  string
	logLevel    string
	historyFile string
	printConfig bool
}

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	var rf runFlags

	flags := flag.NewFlagSet("bills", flag.ContinueOnError)
	flags.StringVarP(&rf.configPath, "config", "c", "", "Use specified config file")
	flags.StringVar(&rf.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&rf.historyFile, "history-file", "", `Line history file ("" disables)`)
	flags.BoolVar(&rf.printConfig, "print-config", false, "Show resolved configuration and exit")

	cmd := &Command{
		Flags: flags,
		Usage: "[flags]",
		Short: "Track bills in an interactive menu",
		Long:  longHelp,
		Exec: func(o *IO, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", ErrUnexpectedArgs, args)
			}

			var overrides config.Overrides

			if flags.Changed("log-level") {
				overrides.LogLevel = &rf.logLevel
			}

			if flags.Changed("history-file") {
				overrides.HistoryFile = &rf.historyFile
			}

			cfg, err := config.Load(config.LoadInput{
				ConfigPath: rf.configPath,
				Overrides:  overrides,
				Env:        env,
			})
			if err != nil {
				return err
			}

			if rf.printConfig {
				o.Printf("%s", config.Format(cfg))

				return nil
			}

			return execSession(o, stdin, cfg, env)
		},
	}

	if len(args) > 0 {
		args = args[1:]
	}

	return cmd.Run(o, args)
}

func execSession(o *IO, stdin io.Reader, cfg config.Config, env map[string]string) error {
	_, noColor := env["NO_COLOR"]
	logger := logging.New(o.errOut, cfg.Level, noColor)

	store := bill.NewStore()

	in := prompt.Open(stdin, o.out, prompt.Options{
		HistoryFile: cfg.History(),
		Complete:    store.Names,
		Logger:      logger,
	})

	defer func() { _ = in.Close() }()

	logger.Debug("session started", "history", cfg.History(), "decimals", cfg.Decimals())

	NewMenu(store, in, o, logger, cfg.Decimals()).Run()

	logger.Debug("session ended", "bills", store.Len())

	return nil
}

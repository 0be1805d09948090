package app

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"erlang-solutions.com/argstore/internal/args"
	"erlang-solutions.com/argstore/internal/config"
	"erlang-solutions.com/argstore/internal/event"
	"erlang-solutions.com/argstore/internal/i18n"
	"erlang-solutions.com/argstore/internal/util"
)

type App struct {
	argv    []string
	store   *args.Store
	options Options
}

func New(argv []string, opts ...Option) *App {
	return &App{
		argv:    append([]string(nil), argv...),
		store:   args.NewStore(),
		options: ApplyOptions(opts...),
	}
}

func (a *App) log() *util.Logger {
	return util.DefaultLogger.WithComponent("app")
}

func (a *App) Store() *args.Store {
	return a.store
}

func (a *App) Bus() *event.Bus {
	return a.options.Bus
}

func (a *App) ConfigPath() string {
	return a.store.String("-conf", config.DefaultFile)
}

// Load parses the command line and merges the config file underneath it.
// A missing config file is only an error when -conf names it explicitly.
func (a *App) Load() error {
	a.store.Parse(a.argv)
	a.options.Bus.Publish(event.Event{Type: event.ArgsParsed, Data: a.store})
	a.log().Debug(i18n.T("args_parsed", nil), map[string]any{
		"flags":      i18n.Tp("flags_parsed", len(a.store.Keys()), nil),
		"positional": len(a.store.Positional()),
	})

	path := a.ConfigPath()
	cfg := config.Config{Path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !a.store.IsSet("-conf") {
		a.log().Debug(i18n.T("config_missing", map[string]any{"Path": path}), nil)
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return util.NewError(util.ErrTypeConfig, i18n.T("config_load_error", map[string]any{"Error": err}), err)
		}
		if err := a.store.Merge(loaded); err != nil {
			return util.NewError(util.ErrTypeArgs, i18n.T("config_load_error", map[string]any{"Error": err}), err)
		}
		cfg = loaded
		a.log().Info(i18n.T("config_loaded", map[string]any{"Path": path}), nil)
	}

	a.options.Bus.Publish(event.Event{Type: event.ConfigUpdated, Data: cfg})
	return nil
}

// Print writes the effective flags as TOML. Flags with a single value are
// written as strings, repeated flags as arrays.
func (a *App) Print(w io.Writer) error {
	snapshot := a.store.Snapshot()
	out := make(map[string]any, len(snapshot))
	for key, values := range snapshot {
		if len(values) == 1 {
			out[key] = values[0]
			continue
		}
		out[key] = values
	}
	return toml.NewEncoder(w).Encode(out)
}

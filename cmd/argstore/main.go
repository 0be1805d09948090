package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"erlang-solutions.com/argstore/internal/app"
	"erlang-solutions.com/argstore/internal/args"
	"erlang-solutions.com/argstore/internal/daemon"
	"erlang-solutions.com/argstore/internal/event"
	"erlang-solutions.com/argstore/internal/i18n"
	"erlang-solutions.com/argstore/internal/util"
)

type usageLine struct {
	flag   string
	descID string
}

var usageLines = []usageLine{
	{"-conf=<file>", "flag_conf_desc"},
	{"-loglevel=<level>", "flag_loglevel_desc"},
	{"-logfile=<file>", "flag_logfile_desc"},
	{"-pid", "flag_pid_desc"},
	{"-daemon", "flag_daemon_desc"},
	{"-print", "flag_print_desc"},
	{"-lang=<code>", "flag_lang_desc"},
}

func printUsage(w io.Writer) {
	langs := i18n.Languages()
	sort.Strings(langs)
	data := map[string]any{"Languages": strings.Join(langs, ", ")}

	_, _ = fmt.Fprintf(w, "%s\n\n", i18n.T("usage_header", nil))
	_, _ = fmt.Fprintf(w, "%s\n", i18n.T("usage_format", nil))
	_, _ = fmt.Fprintf(w, "\n%s\n", i18n.T("options_header", nil))
	for _, line := range usageLines {
		_, _ = fmt.Fprintf(w, "  %s\n    \t%s\n", line.flag, i18n.T(line.descID, data))
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", i18n.T("flag_negation_note", nil))
}

func helpRequested(store *args.Store) bool {
	return store.Bool("-help", false) || store.Bool("-h", false) || store.Bool("-?", false)
}

// logSink reopens the log file whenever the flags are reloaded.
type logSink struct {
	mu   sync.Mutex
	file *os.File
}

func (s *logSink) apply(store *args.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := util.ParseLogLevel(store.String("-loglevel", "info"))
	path := store.String("-logfile", "")

	if path == "" {
		util.SetDefaultLogger(level, os.Stderr)
		return s.closeLocked()
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		util.SetDefaultLogger(level, os.Stderr)
		return util.NewError(util.ErrTypeIO, i18n.T("log_file_error", map[string]any{"Error": err}), err)
	}
	util.SetDefaultLogger(level, file)
	_ = s.closeLocked()
	s.file = file
	return nil
}

func (s *logSink) closeLocked() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *logSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(argv []string, stdout io.Writer) int {
	util.InitDefaultLogger()

	if err := i18n.InitDefaultFS(); err != nil {
		util.Warn("Failed to initialize localization", map[string]any{"error": err})
	}

	application := app.New(argv)
	store := application.Store()
	defer application.Bus().Close()

	sink := &logSink{}
	defer func() { _ = sink.Close() }()

	application.Bus().Subscribe(event.ConfigUpdated, func(evt event.Event) {
		if lang := store.String("-lang", ""); lang != "" {
			i18n.SetLanguage(lang)
		}
		if err := sink.apply(store); err != nil {
			util.LogError("Failed to update logging configuration", err, nil)
		}
	})

	if err := application.Load(); err != nil {
		util.LogError(i18n.T("app_error", map[string]any{"Error": err}), err, nil)
		return 1
	}

	if helpRequested(store) {
		printUsage(stdout)
		return 0
	}

	if store.Bool("-print", false) {
		if err := application.Print(stdout); err != nil {
			util.LogError(i18n.T("app_error", map[string]any{"Error": err}), err, nil)
			return 1
		}
		return 0
	}

	if store.Bool("-pid", false) {
		pidPath, err := writePid()
		if err != nil {
			util.LogError(i18n.T("pid_file_error", map[string]any{"Error": err}), err, nil)
		} else {
			defer func() { _ = daemon.RemovePidFile(pidPath) }()
		}
	}

	if !store.Bool("-daemon", false) {
		return 0
	}

	return exitCode(application.Run(context.Background()))
}

// exitCode maps the result of App.Run to a process exit status. A shutdown
// that overran its timeout is a failure even though it is otherwise expected.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.DeadlineExceeded):
		util.LogError(i18n.T("app_error", map[string]any{"Error": err}), err, nil)
		return 1
	case util.IsExpectedError(err):
		util.Info(i18n.T("app_terminated", map[string]any{"Reason": err.Error()}), nil)
		return 0
	default:
		util.LogError(i18n.T("app_error", map[string]any{"Error": err}), err, nil)
		return 1
	}
}

func writePid() (string, error) {
	dir, err := daemon.DefaultPidDir()
	if err != nil {
		return "", err
	}
	return daemon.WritePidFile(dir)
}

package commands

import (
	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/logging"
	"tableflip.dev/sleepdiary/pkg/reminder"
	"tableflip.dev/sleepdiary/pkg/store"
)

// environment holds what every command shares: configuration, the logger
// and the opened journal. Each piece is built on first use.
type environment struct {
	verbose     bool
	interactive bool

	cfg    store.Config
	logger *zap.Logger
	prefs  *store.DiskPreferences
	local  *reminder.Local
}

func (e *environment) setup() error {
	if e.cfg != nil {
		return nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel(), e.verbose)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = logger
	e.log().Debugw("configuration loaded", "path", cfg.BasePath(), "level", cfg.LogLevel())
	return nil
}

func (e *environment) sync() {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func (e *environment) log() *zap.SugaredLogger {
	if e.logger == nil {
		return logging.Nop()
	}
	return e.logger.Sugar()
}

func (e *environment) config() (store.Config, error) {
	if err := e.setup(); err != nil {
		return nil, err
	}
	return e.cfg, nil
}

func (e *environment) preferences() (*store.DiskPreferences, error) {
	if e.prefs != nil {
		return e.prefs, nil
	}
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	prefs, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	e.prefs = prefs
	return prefs, nil
}

// service opens the note journal.
func (e *environment) service() (*app.Service, error) {
	prefs, err := e.preferences()
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Notes: store.NewNotes(prefs, store.WithLogger(e.log().Named("notes"))),
	}, nil
}

// scheduler returns the local reminder scheduler, which asks on the terminal
// before enabling reminders and rings the terminal when one is due.
func (e *environment) scheduler() (*reminder.Local, error) {
	if e.local != nil {
		return e.local, nil
	}
	prefs, err := e.preferences()
	if err != nil {
		return nil, err
	}
	e.local = reminder.NewLocal(prefs,
		reminder.WithAuthorizer(reminder.PromptAuthorizer{Label: "Allow Sleep Diary to send you a daily reminder"}),
		reminder.WithNotifier(&reminder.TerminalNotifier{Out: color.Output, Bell: true}),
		reminder.WithLogger(e.log().Named("reminder")),
	)
	return e.local, nil
}

func (e *environment) reminders() (*reminder.Reminders, error) {
	local, err := e.scheduler()
	if err != nil {
		return nil, err
	}
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	return reminder.NewReminders(local, e.prefs,
		reminder.WithDefault(cfg.ReminderDefault()),
		reminder.WithSettingsLogger(e.log().Named("settings")),
	), nil
}

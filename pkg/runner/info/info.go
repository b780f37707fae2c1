package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/reminder"
	"tableflip.dev/sleepdiary/pkg/store"
)

type Info struct {
	Config    store.Config
	Service   *app.Service
	Reminders *reminder.Reminders
}

func (n *Info) Do(ctx context.Context) error {

	if override := os.Getenv("SLEEPDIARY_CONFIG_PATH"); override != "" {
		fmt.Println("SLEEPDIARY_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("SLEEPDIARY_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.path: ", n.Config.BasePath())
	fmt.Println("Config.log.level: ", n.Config.LogLevel())

	if n.Service == nil {
		return fmt.Errorf("failed to open the note store")
	}

	all, err := n.Service.All(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Notes: %d\n", len(all))
	if len(all) > 0 {
		fmt.Printf("  newest: %s\n", all[0].CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("  oldest: %s\n", all[len(all)-1].CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if n.Reminders != nil {
		s := n.Reminders.Settings()
		state := "off"
		if s.Enabled {
			state = "on"
		}
		fmt.Printf("Reminder: %s (%s)\n", s, state)
	}

	return nil
}

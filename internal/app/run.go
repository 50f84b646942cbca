package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/macropad-core/internal/binding"
	"github.com/nerrad567/macropad-core/internal/device"
	"github.com/nerrad567/macropad-core/internal/dispatch"
	"github.com/nerrad567/macropad-core/internal/store"
)

// sessionPlan is one device cleared for a dispatch session.
type sessionPlan struct {
	name  string
	desc  device.Descriptor
	table *binding.Table
}

// runSessions saves the working state, grabs every uniquely-matched device,
// and runs one dispatch session per device until interrupt. A device that
// disconnects mid-run ends only its own session.
func (a *App) runSessions(ctx context.Context, st *store.State) (state, error) {
	if err := a.store.Save(*st); err != nil {
		return 0, fmt.Errorf("saving before run: %w", err)
	}
	a.menu.Say("Saved %d device(s).", len(st.Devices))

	if len(st.Devices) == 0 {
		a.menu.Say("Nothing to run.")
		return stateMain, nil
	}

	keyboards, err := a.hardware.Keyboards()
	if err != nil {
		return 0, fmt.Errorf("listing keyboards: %w", err)
	}

	plans := a.planSessions(st, keyboards)
	if len(plans) == 0 {
		a.menu.Say("No sessions to start.")
		return stateMain, nil
	}

	a.settle()

	g, runCtx := errgroup.WithContext(ctx)
	started := 0
	for _, plan := range plans {
		dev, err := a.hardware.Acquire(plan.desc)
		if err != nil {
			a.menu.Say("Could not grab %s: %v", plan.name, err)
			a.logger.Warn("grab failed", "device", plan.name, "error", err)
			continue
		}

		session := dispatch.NewSession(plan.name, dev, plan.table, a.invoker, a.history)
		session.SetLogger(a.logger)
		started++

		g.Go(func() error {
			err := session.Run(runCtx)
			if errors.Is(err, dispatch.ErrDeviceDisconnected) {
				// One device vanishing must not take the others down.
				a.logger.Warn("session lost its device", "error", err)
				return nil
			}
			return err
		})
	}

	if started == 0 {
		a.menu.Say("No sessions started.")
		return stateMain, nil
	}

	a.menu.Say("Starting run loop with %d device(s). Ctrl+C to exit.", started)
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("run loop: %w", err)
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	a.menu.Say("All sessions ended.")
	return stateMain, nil
}

// planSessions maps configured devices onto live descriptors. Missing
// devices are skipped; any ambiguity is refused rather than guessed at:
// a descriptor claimed by two records, or a record matching two
// descriptors, gets no session.
func (a *App) planSessions(st *store.State, keyboards []device.Descriptor) []sessionPlan {
	records := st.Records()

	contested := make(map[string]bool)
	for _, d := range keyboards {
		if len(device.Conflicts(records, d)) >= 2 {
			a.menu.Say("Refusing %s: more than one configured device matches it.", d.Name)
			a.logger.Error("contested descriptor",
				"path", d.Path, "name", d.Name, "error", device.ErrAmbiguousMatch)
			contested[d.Path] = true
		}
	}

	var plans []sessionPlan
	names := device.DisplayNames(records)
	for i, dc := range st.Devices {
		var matched []device.Descriptor
		for _, d := range keyboards {
			if contested[d.Path] {
				continue
			}
			if dc.Record.Matches(d) {
				matched = append(matched, d)
			}
		}

		switch len(matched) {
		case 0:
			a.menu.Say("%s is not present, skipping.", names[i])
			a.logger.Warn("device not present",
				"name", names[i], "error", device.ErrNotFound)
		case 1:
			plans = append(plans, sessionPlan{
				name:  names[i],
				desc:  matched[0],
				table: binding.NewTable(dc.Bindings),
			})
		default:
			a.menu.Say("Refusing %s: it matches more than one present device.", names[i])
			a.logger.Error("ambiguous record",
				"name", names[i], "error", device.ErrAmbiguousMatch)
		}
	}
	return plans
}

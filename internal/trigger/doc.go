// Package trigger hands fired bindings to the automation daemon.
//
// The only implementation shells out to autokey-run, one process per
// firing: --script, --phrase, or --folder plus the artifact title. The
// Runner seam keeps the package testable without the daemon installed.
//
// Dispatch treats every invocation as fire-and-forget with a completion
// check: a failure is logged and recorded but never stops the loop.
//
// # Usage
//
//	inv := trigger.NewAutoKey(cfg.AutoKey.Binary)
//	err := inv.Invoke(ctx, binding.TriggerPhrase, "home address")
package trigger

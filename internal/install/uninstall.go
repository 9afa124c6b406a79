package install

import (
	"fmt"
	"os"

	"vrsetup/internal/model"
)

// Uninstall tears down what Install created. A deletion failure is
// reported and the run keeps going: later cleanup steps are independent
// and the user can re-run after closing whatever holds the files open.
// PATH entries are deliberately left alone.
func (in *Installer) Uninstall() *model.Summary {
	sum := &model.Summary{Action: "uninstall", Layout: in.Layout}
	lay := in.Layout

	in.step(sum, "remove install root", func() (model.StepResult, error) {
		if _, err := os.Stat(lay.InstallRoot); os.IsNotExist(err) {
			return ok(lay.InstallRoot + " not found, nothing to remove")
		}
		if err := os.RemoveAll(lay.InstallRoot); err != nil {
			// Reported, not fatal: carry on with the remaining cleanup.
			return model.StepResult{
				Outcome: model.OutcomeFailed,
				Detail: fmt.Sprintf("%v — close any program using files under %s and re-run",
					err, lay.InstallRoot),
			}, nil
		}
		return ok("removed " + lay.InstallRoot)
	})

	in.step(sum, "remove launcher", func() (model.StepResult, error) {
		removed := 0
		for _, path := range in.Launcher.Paths(lay) {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				continue
			}
			if err := os.Remove(path); err != nil {
				return model.StepResult{
					Outcome: model.OutcomeFailed,
					Detail:  err.Error(),
				}, nil
			}
			removed++
		}
		if removed == 0 {
			return ok("launcher not found, nothing to remove")
		}
		return ok(fmt.Sprintf("removed %d launcher file(s)", removed))
	})

	in.step(sum, "PATH entries", func() (model.StepResult, error) {
		return ok("left intact on purpose; delete the voice-recorder line from your shell config if you want it gone")
	})

	return sum
}

// Failed reports whether any step in the summary failed.
func Failed(sum *model.Summary) bool {
	for _, s := range sum.Steps {
		if s.Outcome == model.OutcomeFailed {
			return true
		}
	}
	return false
}

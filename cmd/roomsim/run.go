package main

import (
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	flagSteps      int
	flagProfile    string
	flagProfileDir string
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Step a room and print entity counts",
	Long: `Load a room, run the step phases the given number of times and
print how many entities of each prototype remain.

Profiling:
  cpu  - CPU profile
  mem  - memory allocation profile

Examples:
  roomsim run level1.room --steps 600
  roomsim run level1.room --steps 10000 --profile cpu --profile-dir ./prof`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 0, "Number of steps (default from config)")
	runCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile mode: cpu or mem")
	runCmd.Flags().StringVar(&flagProfileDir, "profile-dir", ".", "Directory for profile output")
}

func runRun(_ *cobra.Command, args []string) error {
	steps := flagSteps
	if steps <= 0 {
		steps = cfg.Simulation.Steps
	}

	var mode func(*profile.Profile)
	switch flagProfile {
	case "":
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu or mem)", flagProfile)
	}

	w, err := openWorld()
	if err != nil {
		return err
	}
	res, err := w.requireRoom(args[0])
	if err != nil {
		return err
	}
	rm := res.Room

	if mode != nil {
		p := profile.Start(mode, profile.ProfilePath(flagProfileDir), profile.NoShutdownHook, profile.Quiet)
		defer p.Stop()
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		rm.Step()
	}
	elapsed := time.Since(start)

	if ref, ok := rm.Verify(); !ok {
		return fmt.Errorf("store inconsistent after %d steps at entity %d", steps, ref.ID)
	}

	logger.Info("run finished", "room", rm.Name, "steps", steps, "elapsed", elapsed)
	fmt.Printf("Room %q after %d steps (%s, %s/step)\n", rm.Name, rm.Frame(), elapsed.Round(time.Microsecond), perStep(elapsed, steps))
	fmt.Println()
	printCounts(countPrototypes(rm))
	return nil
}

func perStep(d time.Duration, steps int) time.Duration {
	if steps == 0 {
		return 0
	}
	return (d / time.Duration(steps)).Round(time.Nanosecond)
}

// Command shepherd runs the shepherding simulation loop driver against a
// scenario file, accepting one job from the command line and reporting
// progress on the process log until the job completes or the process is
// interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rs/zerolog"

	"github.com/JAVillarino/The-Drone-Rangers/internal/config"
	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/loop"
	"github.com/JAVillarino/The-Drone-Rangers/internal/planning"
	"github.com/JAVillarino/The-Drone-Rangers/internal/sim"
	"github.com/JAVillarino/The-Drone-Rangers/internal/store"
	"github.com/JAVillarino/The-Drone-Rangers/internal/telemetry"
)

func main() {
	scenarioPath := flag.String("scenario", "", "Path to a scenario YAML file (required)")
	dsn := flag.String("postgres", "", "Postgres DSN for job persistence (empty uses in-process memory)")
	targetX := flag.Float64("target-x", 0, "Job target center X")
	targetY := flag.Float64("target-y", 0, "Job target center Y")
	targetR := flag.Float64("target-r", 20, "Job target radius")
	drones := flag.Int("drones", 0, "Controllers assigned to the job (0 = scenario's drone_count)")
	debug := flag.Bool("debug", false, "Enable debug-level logging")
	runFor := flag.Duration("for", 0, "Stop after this long (0 = run until interrupted)")

	flag.Parse()

	log := telemetry.NewLogger(*debug)

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "shepherd: -scenario is required")
		os.Exit(1)
	}

	scenario, err := config.LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scenario")
	}

	rng := rand.New(rand.NewSource(scenario.WorldConfig.Seed))
	center := scenario.WorldConfig.Bounds.Center()
	agentSpacing := scenario.WorldConfig.Ra * 2

	initialP := config.GenerateLayout(scenario.Layout, scenario.AgentCount, center, agentSpacing, rng)
	initialD := config.GenerateLayout(core.LayoutRing, scenario.DroneCount, center, scenario.WorldConfig.Rs, rng)

	world, err := sim.NewWorldFromScenario(scenario, initialP, initialD)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to construct world")
	}

	policy := planning.NewPolicy(scenario.PolicyConfig)

	var syncer store.JobSyncer
	if *dsn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		bunSyncer, err := store.NewBunSyncer(ctx, store.DefaultBunConfig(*dsn))
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer bunSyncer.Close()
		syncer = bunSyncer
	} else {
		syncer = store.NewMemorySyncer()
	}

	driver := loop.NewDriver(world, policy, syncer, log, loop.DefaultConfig())

	wantDrones := *drones
	if wantDrones == 0 {
		wantDrones = scenario.DroneCount
	}
	radius := *targetR
	target := core.NewCircleTarget(core.Vec2{X: *targetX, Y: *targetY}, &radius)
	job := core.NewJob(uuid.NewString(), wantDrones, &target)
	job.Status = core.JobRunning
	job.IsActive = true
	job.ScenarioID = scenario.ID
	driver.SubmitJob(job)

	log.Info().Str("job", job.ID).Int("agents", scenario.AgentCount).Int("drones", wantDrones).Msg("job submitted")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *runFor)
		defer cancel()
	}

	reportDone := make(chan struct{})
	go reportProgress(ctx, driver, job.ID, log, reportDone)

	driver.Run(ctx)
	<-reportDone
}

// reportProgress logs the job's status and remaining-time estimate every
// second until it leaves the running state or the context is cancelled.
func reportProgress(ctx context.Context, driver *loop.Driver, jobID string, log zerolog.Logger, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, job := range driver.Jobs() {
				if job.ID != jobID {
					continue
				}
				entry := log.Info().Str("job", job.ID).Str("status", job.Status.String())
				if job.RemainingTime != nil {
					entry = entry.Float64("remaining_s", *job.RemainingTime)
				}
				entry.Msg("job progress")
				if job.Status == core.JobCompleted || job.Status == core.JobCancelled {
					return
				}
			}
		}
	}
}

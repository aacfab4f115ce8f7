package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	habitat "github.com/varun-cfg/Habitat"
	"github.com/varun-cfg/Habitat/internal/creds"
	"github.com/varun-cfg/Habitat/sim"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	"go.viam.com/utils/rpc"
)

const validPhases = "floor, sample, probe, extract"

func main() {
	credsPath := flag.String("creds", "", "path to simulator machine credentials JSON file")
	configPath := flag.String("config", "", "path to extraction config JSON file (optional)")
	phase := flag.String("phase", "", "phase to run: "+validPhases)
	scene := flag.String("scene", "", "scene asset to operate on")
	flag.Parse()

	logger := logging.NewLogger("habitat-cli")

	if *credsPath == "" {
		logger.Fatal("-creds flag is required")
	}
	if *phase == "" {
		logger.Fatal("-phase flag is required; valid phases: " + validPhases)
	}
	if *scene == "" {
		logger.Fatal("-scene flag is required")
	}

	machineCreds, err := creds.Load(*credsPath)
	if err != nil {
		logger.Fatal(err)
	}

	cfg := habitat.DefaultConfig()
	if *configPath != "" {
		loaded, err := habitat.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = *loaded
	}
	cfg.Scenes = []string{*scene}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	machine, err := client.New(
		ctx,
		machineCreds.Address,
		logger,
		client.WithDialOptions(rpc.WithEntityCredentials(
			machineCreds.EntityID,
			rpc.Credentials{
				Type:    rpc.CredentialsTypeAPIKey,
				Payload: machineCreds.APIKey,
			})),
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer machine.Close(context.Background())

	logger.Info("Connected to simulator machine")

	provider, err := sim.NewViamProvider(machine, logger, sim.ViamConfig{
		CameraName: cfg.Sim.CameraName,
		SensorName: cfg.Sim.SensorName,
		GPUDevice:  cfg.Sim.GPUDevice,
	})
	if err != nil {
		logger.Fatal(err)
	}

	e := habitat.NewExtractor(provider, logger, cfg)

	logger.Infof("=== Running phase: %s ===", *phase)
	switch *phase {
	case "floor":
		floor, err := habitat.ProbeFloor(ctx, e, *scene)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Infof("Floor level: %.3fm (eye level %.3fm)", floor, floor+cfg.EyeHeight)

	case "sample":
		if err := runSample(ctx, e, *scene, logger); err != nil {
			logger.Fatal(err)
		}

	case "probe":
		if err := habitat.Probe(ctx, e, *scene); err != nil {
			logger.Fatal(err)
		}

	case "extract":
		stats, err := habitat.Run(ctx, e)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Infof("Accepted %d images", stats.TotalAccepted)

	default:
		logger.Fatalf("unknown phase %q; valid phases: %s", *phase, validPhases)
	}

	logger.Infof("Phase %s completed successfully", *phase)
}

func runSample(ctx context.Context, e *habitat.Extractor, scene string, logger logging.Logger) error {
	surface, _, err := e.OpenScene(ctx, scene)
	if err != nil {
		return err
	}
	if err := e.PrepareScene(ctx, surface); err != nil {
		return err
	}

	state := e.State()
	logger.Infof("Floor: %.3fm, %d viewpoints:", state.FloorHeight, len(state.Viewpoints))
	for i, vp := range state.Viewpoints {
		logger.Infof("  point %02d: (%.2f, %.2f, %.2f)", i, vp.Position.X, vp.Position.Y, vp.Position.Z)
	}
	return nil
}

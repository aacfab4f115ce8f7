package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	habitat "github.com/varun-cfg/Habitat"
	"github.com/varun-cfg/Habitat/internal/creds"
	"github.com/varun-cfg/Habitat/sim"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	"go.viam.com/utils/rpc"
)

func main() {
	credsPath := flag.String("creds", "", "path to simulator machine credentials JSON file")
	configPath := flag.String("config", "", "path to extraction config JSON file (optional)")
	scenes := flag.String("scenes", "", "comma-separated scene assets (overrides config)")
	outputDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	logger := logging.NewDebugLogger("habitat")

	if *credsPath == "" {
		logger.Fatal("-creds flag is required")
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
	if *scenes != "" {
		cfg.Scenes = strings.Split(*scenes, ",")
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if len(cfg.Scenes) == 0 {
		logger.Fatal("no scenes configured; use -scenes or a config file")
	}

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
	stats, err := habitat.Run(ctx, e)
	if err != nil {
		logger.Fatal(err)
	}

	for _, s := range stats.Scenes {
		logger.Infof("%s: %d viewpoints, %d accepted, %d rejected, %d capture failures",
			s.Scene, s.Viewpoints, s.Accepted, s.Rejected, s.CaptureFailures)
	}
	logger.Infof("Total accepted images: %d", stats.TotalAccepted)
}

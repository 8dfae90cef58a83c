package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/hwmon/internal/config"
	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/logger"
	"codeberg.org/mutker/hwmon/internal/metric"
	"codeberg.org/mutker/hwmon/internal/monitor"
	"codeberg.org/mutker/hwmon/internal/telemetry"
)

var (
	cfg       *config.Config
	system    *hardware.System
	collector telemetry.Collector
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")

	system = hardware.NewSystem(logger.Default())

	collector, err = telemetry.NewService(telemetry.Config{
		DBPath:       cfg.TelemetryDB,
		Enabled:      cfg.Telemetry,
		BatchSize:    telemetry.DefaultConfig().BatchSize,
		BatchTimeout: telemetry.DefaultConfig().BatchTimeout,
	}, logger.Default())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
}

func main() {
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	pollers := buildPollers(ctx)
	logger.Info().Int("monitors", len(pollers)).Msg("Monitor set assembled")

	if err := loop(ctx, pollers); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
}

func loop(ctx context.Context, pollers []monitor.Poller) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll(ctx, pollers)
		}
	}
}

func poll(ctx context.Context, pollers []monitor.Poller) {
	for _, p := range pollers {
		observation, err := p.Collect(ctx)
		if err != nil {
			if hardware.IsSensorUnavailable(err) || hardware.IsNotImplemented(err) {
				logger.Debug().Str("device", p.DeviceID()).Err(err).Msg("Sensor unavailable")
			} else {
				logger.Warn().Str("device", p.DeviceID()).Err(err).Msg("Failed to collect observation")
			}
			continue
		}

		logObservation(observation)

		if err := collector.Record(ctx, &telemetry.Observation{
			Timestamp:    observation.Timestamp,
			Monitor:      observation.Name,
			HardwareType: observation.HardwareType,
			DeviceID:     observation.DeviceID,
			Metric:       observation.MetricName,
			Value:        observation.Value,
		}); err != nil {
			logger.Warn().Err(err).Msg("Failed to record observation")
		}
	}
}

func logObservation(observation monitor.Observation) {
	logger.Info().
		Str("device", observation.DeviceID).
		Str("metric", observation.MetricName).
		Float64("value", observation.Value).
		Msg(observation.Name)
}

// buildPollers probes the machine and assembles one poller per sensor that
// is actually present. Absent hardware is skipped, not an error.
func buildPollers(ctx context.Context) []monitor.Poller {
	access := system
	historySize := cfg.HistorySize

	celsius := func(t metric.Temperature) float64 { return t.Celsius() }
	percent := func(p metric.Percentage) float64 { return p.Value() }
	bytes := func(b metric.ByteSize) float64 { return float64(b.Bytes()) }

	pollers := []monitor.Poller{
		monitor.NewPoller[metric.Temperature](monitor.NewCPUTemperature(access, historySize), "temperature_celsius", celsius),
		monitor.NewPoller[metric.Percentage](monitor.NewCPUUtilization(access, historySize), "utilization_percent", percent),
		monitor.NewPoller[metric.Temperature](monitor.NewAmbientTemperature(access, historySize), "temperature_celsius", celsius),
		monitor.NewPoller[metric.Percentage](monitor.NewMemoryUsage(access, historySize), "used_percent", percent),
		monitor.NewPoller[metric.ByteSize](monitor.NewSwapUsage(access, historySize), "used_bytes", bytes),
		monitor.NewPoller[metric.Percentage](monitor.NewMemoryPressure(access, historySize), "pressure_percent", percent),
		monitor.NewPoller[metric.Temperature](monitor.NewMemoryTemperature(historySize), "temperature_celsius", celsius),
	}

	if gpu, err := access.GPUSnapshot(ctx); err == nil {
		pollers = append(pollers,
			monitor.NewPoller[metric.Temperature](monitor.NewGPUTemperature(access, gpu.Class, historySize), "temperature_celsius", celsius),
			monitor.NewPoller[metric.Percentage](monitor.NewGPUUtilization(access, historySize), "utilization_percent", percent),
			monitor.NewPoller[metric.ByteSize](monitor.NewGPUMemory(access, historySize), "memory_used_bytes", bytes),
		)
	} else {
		logger.Debug().Err(err).Msg("No GPU detected, skipping GPU monitors")
	}

	if battery, err := access.BatterySnapshot(ctx); err == nil && battery.Present {
		pollers = append(pollers,
			monitor.NewPoller[metric.Temperature](monitor.NewBatteryTemperature(access, historySize), "temperature_celsius", celsius),
			monitor.NewPoller[metric.Percentage](monitor.NewBatteryCapacity(access, historySize), "charge_percent", percent),
			monitor.NewPoller[float64](monitor.NewBatteryPower(access, historySize), "power_draw_watts", func(v float64) float64 { return v }),
			monitor.NewPoller[metric.Percentage](monitor.NewBatteryHealth(access, historySize), "health_percent", percent),
		)
	} else {
		logger.Debug().Msg("No battery detected, skipping battery monitors")
	}

	if fans, err := monitor.DiscoverFans(ctx, access, historySize); err == nil {
		for _, fan := range fans {
			pollers = append(pollers, monitor.NewPoller[metric.Percentage](fan, "speed_percent", percent))
		}
	} else {
		logger.Debug().Err(err).Msg("No fan interface, skipping fan monitors")
	}

	if devices, err := access.ListDisks(ctx); err == nil {
		for _, device := range devices {
			pollers = append(pollers,
				monitor.NewPoller[metric.Percentage](monitor.NewDiskStorage(access, device, historySize), "used_percent", percent),
				monitor.NewPoller[metric.ByteSize](monitor.NewDiskIO(access, device, historySize), "io_bytes", bytes),
			)
		}
	} else {
		logger.Debug().Err(err).Msg("Failed to enumerate disks, skipping disk monitors")
	}

	return pollers
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup() {
	if err := collector.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry collector")
	}
	if err := system.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close hardware access")
	}
	logger.Info().Msg("Exiting...")
}

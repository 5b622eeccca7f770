// Command ingestctl is a small device-side client for the telemetry API.
// It submits readings, lists stored readings, and checks service health
// over HTTP using the same contracts as any other device.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/greenhouse-iot/telemetry-api/internal/adapter"
	"github.com/greenhouse-iot/telemetry-api/internal/logger"
	"github.com/greenhouse-iot/telemetry-api/models"
)

func main() {
	_ = godotenv.Load()

	var (
		serverURL = flag.String("server", envOr("TELEMETRY_SERVER", "http://localhost:8000"), "Base URL of the telemetry API")
		token     = flag.String("token", os.Getenv("APP_API_TOKEN"), "Shared API token")
		command   = flag.String("cmd", "health", "Command: health, submit or list")
		deviceID  = flag.String("device", "", "Device identifier")
		sensor    = flag.String("sensor", "", "Sensor type")
		value     = flag.Float64("value", 0, "Measured value")
		unit      = flag.String("unit", "", "Measurement unit")
		limit     = flag.Int("limit", 100, "Page size for list")
		offset    = flag.Int("offset", 0, "Page offset for list")
		timeout   = flag.Duration("timeout", 15*time.Second, "Request timeout")
	)
	flag.Parse()

	log := logger.NewLogger("ingestctl")

	client := adapter.NewAPIClient(adapter.HTTPClientConfig{
		BaseURL: *serverURL,
		Token:   *token,
		Timeout: *timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var result any
	var err error

	switch *command {
	case "health":
		result, err = client.Health(ctx)
	case "submit":
		hasValue := hasFlag("value")
		req := models.CreateReadingRequest{
			DeviceID: *deviceID,
			Sensor:   *sensor,
			Unit:     *unit,
		}
		if hasValue {
			req.Value = value
		}
		result, err = client.SubmitReading(ctx, req)
	case "list":
		result, err = client.ListReadings(ctx, models.ReadingFilter{
			DeviceID: *deviceID,
			Sensor:   *sensor,
			Limit:    *limit,
			Offset:   *offset,
		})
	default:
		log.Fatal().Str("cmd", *command).Msg("unknown command")
	}

	if err != nil {
		log.Fatal().Err(err).Str("cmd", *command).Msg("request failed")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to render response")
	}

	fmt.Println(string(out))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// hasFlag reports whether the named flag was set explicitly, so an omitted
// -value is sent as a missing field instead of 0.
func hasFlag(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

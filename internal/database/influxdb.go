package database

import (
	"context"
	"fmt"
	"time"

	"scaling-bench/internal/config"
	"scaling-bench/internal/dataparser"
	"scaling-bench/internal/logging"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sirupsen/logrus"
)

const MeasurementScalingResults = "scaling_results"

type InfluxDBClient struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewInfluxDBClient(config config.DatabaseConfig) (*InfluxDBClient, error) {
	logger := logging.GetLogger()

	client := influxdb2.NewClient(config.Host, config.Password)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		logger.WithField("host", config.Host).WithError(err).Error("Failed to connect to InfluxDB")
		client.Close()
		return nil, err
	}

	if health.Status != "pass" {
		msg := ""
		if health.Message != nil {
			msg = *health.Message
		}
		logger.WithFields(logrus.Fields{
			"host":    config.Host,
			"status":  health.Status,
			"message": msg,
		}).Error("InfluxDB health check failed")
		client.Close()
		return nil, fmt.Errorf("influxdb health check failed: status %s", health.Status)
	}

	logger.WithFields(logrus.Fields{
		"host":   config.Host,
		"bucket": config.Name,
		"org":    config.Org,
	}).Info("Connected to InfluxDB")

	return &InfluxDBClient{
		client:   client,
		writeAPI: client.WriteAPIBlocking(config.Org, config.Name),
		bucket:   config.Name,
		org:      config.Org,
	}, nil
}

// BuildPoints turns aggregated sweeps into one point per configuration key.
// The raw key is stored alongside the normalized one so results can be
// re-plotted with a different divisor.
func BuildPoints(figure, checksum, runID string, sweeps []dataparser.SweepResult, ts time.Time) []*write.Point {
	var points []*write.Point
	for _, s := range sweeps {
		for i, key := range s.Series.Keys {
			fields := map[string]interface{}{
				"key": key,
				"fom": s.Series.Values[i],
			}
			if i < len(s.Records) {
				fields["raw_key"] = int64(s.Records[i].Key)
			}
			if i < len(s.Reference) {
				fields["linear_reference"] = s.Reference[i]
			}

			point := influxdb2.NewPoint(MeasurementScalingResults,
				map[string]string{
					"figure":          figure,
					"sweep":           s.Config.Name,
					"marker":          s.Config.Marker,
					"config_checksum": checksum,
					"run_id":          runID,
				},
				fields,
				// Points share a tag set per sweep, so offset by index to keep them distinct.
				ts.Add(time.Duration(i)*time.Microsecond))

			points = append(points, point)
		}
	}
	return points
}

func (idb *InfluxDBClient) WriteSweeps(ctx context.Context, figure, checksum, runID string, sweeps []dataparser.SweepResult) error {
	points := BuildPoints(figure, checksum, runID, sweeps, time.Now())
	if len(points) == 0 {
		return nil
	}

	if err := idb.writeAPI.WritePoint(ctx, points...); err != nil {
		return fmt.Errorf("failed to write data points: %w", err)
	}

	logging.GetLogger().WithFields(logrus.Fields{
		"bucket": idb.bucket,
		"points": len(points),
	}).Info("Wrote scaling results to InfluxDB")
	return nil
}

func (idb *InfluxDBClient) Close() {
	if idb.client != nil {
		idb.client.Close()
	}
}

package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// PutMetricDataAPI is the slice of the CloudWatch client we use
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client publishes custom metrics to CloudWatch
type Client struct {
	api         PutMetricDataAPI
	enabled     bool
	namespace   string
	environment string
	log         *logger.Logger
	inflight    sync.WaitGroup
}

// NewClient creates a CloudWatch metrics client. Outside production, or when
// AWS config cannot be loaded, it returns a disabled client.
func NewClient(ctx context.Context, environment, namespace string, log *logger.Logger) *Client {
	disabled := &Client{enabled: false, namespace: namespace, environment: environment, log: log}

	if environment != "production" {
		log.Info("CloudWatch metrics disabled", logger.Fields{"environment": environment})
		return disabled
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Warn("Failed to load AWS config for CloudWatch", logger.Fields{"error": err.Error()})
		return disabled
	}

	log.Info("CloudWatch metrics enabled", logger.Fields{"namespace": namespace})
	return NewClientWithAPI(cloudwatch.NewFromConfig(cfg), environment, namespace, log)
}

// NewClientWithAPI creates an enabled client around an existing API implementation
func NewClientWithAPI(api PutMetricDataAPI, environment, namespace string, log *logger.Logger) *Client {
	return &Client{
		api:         api,
		enabled:     true,
		namespace:   namespace,
		environment: environment,
		log:         log,
	}
}

// RecordAPIRequest records a request count (or error count) and its latency
func (m *Client) RecordAPIRequest(_ context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	metricName := "APIRequests"
	if statusCode >= httpStatusServerError {
		metricName = "APIErrors"
	}
	dimensions := []types.Dimension{
		{
			Name:  aws.String("Endpoint"),
			Value: aws.String(endpoint),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}

	m.async(func(ctx context.Context) {
		m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions)
		m.putMetric(ctx, "APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
	})
}

// RecordGeneration records generation duration by strategy and outcome
func (m *Client) RecordGeneration(_ context.Context, strategy string, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	dimensions := []types.Dimension{
		{
			Name:  aws.String("Strategy"),
			Value: aws.String(strategy),
		},
		{
			Name:  aws.String("Success"),
			Value: aws.String(boolToString(success)),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}

	m.async(func(ctx context.Context) {
		m.putMetric(ctx, "GenerationDuration", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
	})
}

// Wait blocks until in-flight publishes finish or ctx is done
func (m *Client) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (m *Client) async(fn func(ctx context.Context)) {
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		// request contexts are cancelled once the response is written
		ctx, cancel := context.WithTimeout(context.Background(), cloudwatchTimeoutSeconds*time.Second)
		defer cancel()
		fn(ctx)
	}()
}

func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) {
	if m.api == nil {
		return
	}

	_, err := m.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})
	if err != nil {
		m.log.Warn("Failed to record CloudWatch metric", logger.Fields{
			"metric": metricName,
			"error":  err.Error(),
		})
	}
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

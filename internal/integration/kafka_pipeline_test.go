//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/quake-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-risk-service/internal/config"
	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
	"github.com/couchcryptid/quake-risk-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-requests"
	testSinkTopic   = "test-predictions"
)

// predictionMessage holds a deserialized message read from the sink topic.
type predictionMessage struct {
	Record  domain.PredictionRecord
	Key     string
	Headers map[string]string
}

// readPrediction reads a single message from the sink consumer and deserializes it.
func readPrediction(ctx context.Context, t *testing.T, consumer *kafkago.Reader) predictionMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec domain.PredictionRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal sink message")

	return predictionMessage{
		Record:  rec,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func newSinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func newTransformer() *pipeline.AssessmentTransformer {
	return pipeline.NewTransformer(domain.DefaultCatalog(), nil, domain.LocaleEnglish, discardLogger(), observability.NewMetricsForTesting())
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (Extractor) and
// kafka.Writer (Loader) correctly round-trip a message through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-reader")

	rows := loadMockData(t)
	row := rows[1] // Sendai
	payload, err := json.Marshal(domain.AssessmentRequest{RiskInput: row.Request})
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("test-key"),
		Value: payload,
	}))

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("test-key"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")

	require.NoError(t, raw.Commit(ctx))

	rec, err := newTransformer().Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []domain.PredictionRecord{rec}))

	pm := readPrediction(ctx, t, newSinkConsumer(t, broker))
	assert.Equal(t, rec.ID, pm.Key)
	assert.Equal(t, string(rec.RiskLevel), pm.Headers["risk_level"])
	_, err = time.Parse(time.RFC3339, pm.Headers["predicted_at"])
	assert.NoError(t, err, "predicted_at should be valid RFC3339")

	assert.Equal(t, "Sendai", pm.Record.NearestLocation)
	assert.InDelta(t, row.ExpectedCombinedScore, pm.Record.CombinedScore, 1e-9)
	assert.NotEmpty(t, pm.Record.WarningEN)
	assert.NotEmpty(t, pm.Record.WarningJA)
}

// TestPipelineEndToEnd wires the full pipeline (Reader → Transformer → Writer) with
// real Kafka and verifies every catalog-city request is scored or rejected.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-pipeline")

	rows := loadMockData(t)
	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	expected := map[string]mockRequestRow{}
	msgs := make([]kafkago.Message, 0, len(rows))
	for _, row := range rows {
		payload, err := json.Marshal(domain.AssessmentRequest{RiskInput: row.Request})
		require.NoError(t, err)
		msgs = append(msgs, kafkago.Message{Key: []byte(row.Name), Value: payload})
		if !row.ExpectRejected {
			expected[row.Name] = row
		}
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, newTransformer(), writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	received := make(map[string]predictionMessage, len(expected))
	for len(received) < len(expected) {
		pm := readPrediction(ctx, t, consumer)
		received[pm.Record.NearestLocation] = pm
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	for name, row := range expected {
		pm, ok := received[name]
		if !assert.True(t, ok, "missing prediction for %s", name) {
			continue
		}
		assert.InDelta(t, row.ExpectedCombinedScore, pm.Record.CombinedScore, 1e-9, name)
		assert.True(t, pm.Record.RiskLevel.Valid(), name)
		assert.Equal(t, string(pm.Record.RiskLevel), pm.Headers["risk_level"], name)
		assert.Equal(t, pm.Record.ID, pm.Key, name)
	}
	_, naha := received["Naha"]
	assert.False(t, naha, "Naha lies outside the geofence and must be rejected")
}

// TestPipelineTransformError verifies that an invalid message (poison pill) is
// skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)

	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)

	cfg := testConfig(broker, "test-poison")

	rows := loadMockData(t)
	validPayload, err := json.Marshal(domain.AssessmentRequest{RiskInput: rows[2].Request}) // Tokyo
	require.NoError(t, err)
	outside, err := json.Marshal(domain.AssessmentRequest{RiskInput: domain.RiskInput{
		Latitude: 26.2044, Longitude: 127.6792, DepthKm: 150, DaysSinceLastEq: 30, AvgMagnitude: 2.5,
	}})
	require.NoError(t, err)

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("outside"), Value: outside},
		kafkago.Message{Key: []byte("good"), Value: validPayload},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, newTransformer(), writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	// Only the valid message should appear on the sink topic.
	consumer := newSinkConsumer(t, broker)

	pm := readPrediction(ctx, t, consumer)
	assert.Equal(t, "Tokyo", pm.Record.NearestLocation)

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}

package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/movieticket/booking-platform/shared/logging"
	"github.com/movieticket/booking-platform/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	CorrelatorIDHeader = "X-Correlator-Id"
	maxResponseBytes   = 1 << 20
)

// ServiceInvoker performs one JSON POST per call. Failures never surface as
// Go errors; they are recorded in the returned domain.Exchange.
type ServiceInvoker struct {
	router *TopicRouter
	client *http.Client
}

// NewServiceInvoker bounds every call by timeout
func NewServiceInvoker(router *TopicRouter, timeout time.Duration) *ServiceInvoker {
	return NewServiceInvokerWithClient(router, &http.Client{Timeout: timeout})
}

// NewServiceInvokerWithClient uses client as is
func NewServiceInvokerWithClient(router *TopicRouter, client *http.Client) *ServiceInvoker {
	return &ServiceInvoker{router: router, client: client}
}

// InvokeRaw posts payload to the topic's default endpoint and returns the raw body
func (s *ServiceInvoker) InvokeRaw(ctx context.Context, topic domain.Topic, payload any) ([]byte, domain.Exchange) {
	return s.InvokeRawWithSuffix(ctx, topic, topic.Suffix(), payload)
}

// InvokeRawWithSuffix posts payload to the topic's destination under an explicit suffix
func (s *ServiceInvoker) InvokeRawWithSuffix(ctx context.Context, topic domain.Topic, suffix string, payload any) ([]byte, domain.Exchange) {
	route, err := s.router.ResolveWithSuffix(topic, suffix)
	if err != nil {
		return nil, domain.Exchange{Err: err}
	}
	return s.post(ctx, route, payload)
}

// Invoke posts payload and decodes the reply into T. An empty or malformed
// body yields the zero T with the cause in Exchange.Err.
func Invoke[T any](ctx context.Context, invoker *ServiceInvoker, topic domain.Topic, payload any) (T, domain.Exchange) {
	var out T

	body, exch := invoker.InvokeRaw(ctx, topic, payload)
	if exch.Err != nil {
		return out, exch
	}

	if len(bytes.TrimSpace(body)) == 0 {
		exch.Err = domain.ErrEmptyBody
		return out, exch
	}

	if err := statusError(exch.StatusCode); err != nil {
		exch.Err = err
		return out, exch
	}

	if err := json.Unmarshal(body, &out); err != nil {
		logging.FromContext(ctx).WithError(err).WithField("topic", topic.String()).Warn("malformed response body")
		var zero T
		exch.Err = errors.Wrap(err, "malformed response body")
		return zero, exch
	}

	return out, exch
}

// statusError rejects replies outside 2xx whatever their body says
func statusError(code int) error {
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return errors.Errorf("unexpected status %d", code)
	}
	return nil
}

func (s *ServiceInvoker) post(ctx context.Context, route Route, payload any) ([]byte, domain.Exchange) {
	start := time.Now()
	url := route.URL()

	ctx, span := telemetry.StartSpan(ctx, "POST "+route.Topic.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("messaging.topic", route.Topic.String()),
			attribute.String("peer.service", route.Service.String()),
			attribute.String("http.url", url),
		),
	)
	defer span.End()

	body, exch := s.do(ctx, url, payload)

	span.SetAttributes(attribute.Int("http.status_code", exch.StatusCode))
	if exch.Err != nil {
		span.RecordError(exch.Err)
		span.SetStatus(codes.Error, exch.Err.Error())
	}

	duration := time.Since(start)
	telemetry.RecordHistogram(ctx, "outbound_call_duration_seconds", "Downstream call duration", duration.Seconds(),
		attribute.String("topic", route.Topic.String()),
		attribute.Int("status_code", exch.StatusCode),
	)

	entry := logging.FromContext(ctx).WithFields(logrus.Fields{
		"topic":       route.Topic.String(),
		"url":         url,
		"status":      exch.StatusCode,
		"duration_ms": duration.Milliseconds(),
	})
	if exch.Err != nil {
		entry.WithError(exch.Err).Warn("outbound call")
	} else {
		entry.Info("outbound call")
	}

	return body, exch
}

func (s *ServiceInvoker) do(ctx context.Context, url string, payload any) ([]byte, domain.Exchange) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.Exchange{Err: errors.Wrap(err, "failed to marshal request")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, domain.Exchange{Err: errors.Wrap(err, "failed to build request")}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := domain.CorrelatorIDFrom(ctx); ok {
		req.Header.Set(CorrelatorIDHeader, strconv.Itoa(id))
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domain.Exchange{Err: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.Exchange{StatusCode: resp.StatusCode, Err: errors.Wrap(err, "failed to read response")}
	}

	return body, domain.Exchange{StatusCode: resp.StatusCode}
}

package infrastructure

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/pkg/errors"
)

// SQSSubscriberAdapter owns the AWS client and a single running subscriber
type SQSSubscriberAdapter struct {
	mux           sync.Mutex
	sqsSubscriber *SQSEventSubscriber
	client        SQSAPI
	queueURL      string
	opts          []SQSSubscriberOption
}

// NewSQSSubscriberAdapter loads the default AWS config for region. A non-empty
// endpoint overrides the SQS endpoint (LocalStack).
func NewSQSSubscriberAdapter(ctx context.Context, region, endpoint, queueURL string, opts ...SQSSubscriberOption) (*SQSSubscriberAdapter, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &SQSSubscriberAdapter{
		client:   client,
		queueURL: queueURL,
		opts:     opts,
	}, nil
}

// Subscribe starts consuming the queue with handler until ctx is cancelled or Close is called
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, handler EventHandler) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.sqsSubscriber != nil {
		return errors.New("subscriber is already running")
	}

	subscriber := NewSQSEventSubscriber(s.client, s.queueURL, handler, s.opts...)
	if err := subscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.sqsSubscriber = subscriber
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.sqsSubscriber == nil {
		return nil
	}

	if err := s.sqsSubscriber.Stop(context.Background()); err != nil {
		return errors.Wrap(err, "failed to stop SQS subscriber")
	}

	s.sqsSubscriber = nil
	return nil
}

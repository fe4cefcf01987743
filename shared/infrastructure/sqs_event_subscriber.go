package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/movieticket/booking-platform/shared/events"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	SQSMessageIDKey     = "sqs_message_id"
	SQSReceiptHandleKey = "sqs_receipt_handle"
)

// SQSAPI is the part of the SQS client the subscriber needs
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type sqsMessage struct {
	Message types.Message
	Event   *events.Event
	Err     error
}

// EventHandler wraps the Event Handler interface
type EventHandler interface {
	HandlerID() string
	Handle(ctx context.Context, event *events.Event) error
}

// EventHandlerFunc creates a handler from a function
type EventHandlerFunc struct {
	id string
	fn func(ctx context.Context, event *events.Event) error
}

func NewEventHandlerFunc(id string, fn func(ctx context.Context, event *events.Event) error) *EventHandlerFunc {
	return &EventHandlerFunc{
		id: id,
		fn: fn,
	}
}

func (h *EventHandlerFunc) HandlerID() string {
	return h.id
}

func (h *EventHandlerFunc) Handle(ctx context.Context, event *events.Event) error {
	return h.fn(ctx, event)
}

// SQSEventSubscriber reads event envelopes from SQS and hands them to a handler.
// Every message is deleted once handled, whatever the outcome: nothing is redelivered.
//
// Shutdown runs in pipeline order: readers stop receiving, workers finish the
// messages already received, cleaners delete them. Handlers and deletes never
// see the cancellation of the context passed to Start.
type SQSEventSubscriber struct {
	mux     sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	options *sqsSubscriberOptions

	client   SQSAPI
	queueURL string
	handler  EventHandler
}

type sqsSubscriberOptions struct {
	workers                    int32
	readers                    int32
	cleaners                   int32
	maxNumberOfMessages        int32
	waitTimeSeconds            int32
	visibilityTimeout          int32
	sleepTimeAfterEmptyReceive time.Duration
	sleepTimeAfterError        time.Duration
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithReaders(readers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.readers = readers
	}
}

func WithVisibilityTimeout(timeout int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = timeout
	}
}

func WithWaitTime(seconds int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.waitTimeSeconds = seconds
	}
}

func WithSleepTimes(afterEmpty, afterError time.Duration) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.sleepTimeAfterEmptyReceive = afterEmpty
		o.sleepTimeAfterError = afterError
	}
}

// NewSQSEventSubscriber creates a new SQS event subscriber
func NewSQSEventSubscriber(
	client SQSAPI,
	queueURL string,
	handler EventHandler,
	opts ...SQSSubscriberOption,
) *SQSEventSubscriber {
	options := &sqsSubscriberOptions{
		workers:                    10,
		readers:                    1,
		cleaners:                   2,
		maxNumberOfMessages:        5,
		waitTimeSeconds:            15,
		visibilityTimeout:          60,
		sleepTimeAfterEmptyReceive: 2 * time.Second,
		sleepTimeAfterError:        10 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSEventSubscriber{
		client:   client,
		queueURL: queueURL,
		handler:  handler,
		options:  options,
	}
}

// Start launches readers, workers and cleaners. Calling it twice is a no-op.
// Cancelling ctx stops the readers only; use Stop to wait for the drain.
func (s *SQSEventSubscriber) Start(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel != nil {
		return nil
	}
	if s.handler == nil {
		return errors.New("no handler configured")
	}

	readCtx, cancel := context.WithCancel(ctx)
	workCtx := context.WithoutCancel(ctx)

	inbound := make(chan *sqsMessage, s.options.maxNumberOfMessages)
	outbound := make(chan *sqsMessage, s.options.maxNumberOfMessages)

	var readers, workers, cleaners sync.WaitGroup
	spawn(&readers, int(s.options.readers), func() { s.startReader(readCtx, inbound, outbound) })
	spawn(&workers, int(s.options.workers), func() { s.startWorker(workCtx, inbound, outbound) })
	spawn(&cleaners, int(s.options.cleaners), func() { s.startCleaner(workCtx, outbound) })

	done := make(chan struct{})
	go func() {
		readers.Wait()
		close(inbound)
		workers.Wait()
		close(outbound)
		cleaners.Wait()
		close(done)
	}()

	s.cancel = cancel
	s.done = done

	logrus.WithFields(logrus.Fields{
		"queue_url": s.queueURL,
		"handler":   s.handler.HandlerID(),
	}).Info("sqs subscriber started")

	return nil
}

func spawn(wg *sync.WaitGroup, n int, fn func()) {
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
}

// Stop stops receiving and waits until every received message has been
// handled and deleted, or until ctx expires
func (s *SQSEventSubscriber) Stop(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel == nil {
		return nil
	}

	s.cancel()

	select {
	case <-s.done:
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "sqs subscriber did not stop in time")
	}

	s.cancel = nil
	s.done = nil

	return nil
}

func (s *SQSEventSubscriber) startWorker(ctx context.Context, inbound <-chan *sqsMessage, outbound chan<- *sqsMessage) {
	for message := range inbound {
		message.Err = s.handler.Handle(ctx, message.Event)
		outbound <- message
	}
}

func (s *SQSEventSubscriber) startReader(ctx context.Context, inbound, outbound chan<- *sqsMessage) {
	for ctx.Err() == nil {
		if err := s.read(ctx, inbound, outbound); err != nil && ctx.Err() == nil {
			logrus.WithError(err).Warn("sqs receive failed")
			sleep(ctx, s.options.sleepTimeAfterError)
		}
	}
}

func (s *SQSEventSubscriber) startCleaner(ctx context.Context, outbound <-chan *sqsMessage) {
	for message := range outbound {
		if err := s.clean(ctx, message); err != nil {
			logrus.WithError(err).Warn("sqs delete failed")
		}
	}
}

// read receives one batch. Received messages are always handed on, even if
// ctx is cancelled meanwhile, so none is left undeleted.
func (s *SQSEventSubscriber) read(ctx context.Context, inbound, outbound chan<- *sqsMessage) error {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.options.maxNumberOfMessages,
		WaitTimeSeconds:     s.options.waitTimeSeconds,
		VisibilityTimeout:   s.options.visibilityTimeout,
		MessageAttributeNames: []string{
			"All",
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to receive message from SQS")
	}

	if len(output.Messages) == 0 {
		sleep(ctx, s.options.sleepTimeAfterEmptyReceive)
		return nil
	}

	for _, message := range output.Messages {
		msg := &sqsMessage{Message: message}

		event, err := events.FromJSON([]byte(aws.ToString(message.Body)))
		if err != nil {
			// malformed envelopes go straight to the cleaner
			msg.Err = errors.Wrap(err, "malformed event envelope")
			outbound <- msg
			continue
		}

		event.Metadata.Set(SQSMessageIDKey, aws.ToString(message.MessageId))
		if message.ReceiptHandle != nil {
			event.Metadata.Set(SQSReceiptHandleKey, *message.ReceiptHandle)
		}

		for k, v := range message.MessageAttributes {
			if v.StringValue != nil {
				event.Metadata.Set(k, *v.StringValue)
			}
		}

		msg.Event = event
		inbound <- msg
	}

	return nil
}

func (s *SQSEventSubscriber) clean(ctx context.Context, message *sqsMessage) error {
	if message.Err != nil {
		logrus.WithError(message.Err).WithFields(logrus.Fields{
			"message_id": aws.ToString(message.Message.MessageId),
			"handler":    s.handler.HandlerID(),
		}).Warn("dropping message after failed handling")
	}

	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: message.Message.ReceiptHandle,
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete message from SQS")
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

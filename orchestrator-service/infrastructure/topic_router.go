package infrastructure

import (
	"fmt"
	"net"
	"strconv"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/pkg/errors"
)

// Destination is where one downstream service listens
type Destination struct {
	Host string
	Port int
}

// Route is a resolved outbound endpoint
type Route struct {
	Topic   domain.Topic
	Service domain.Service
	BaseURL string
	Suffix  string
}

// URL joins the base endpoint and suffix
func (r Route) URL() string {
	return r.BaseURL + r.Suffix
}

// TopicRouter maps topics to endpoints. It is built once and never changes,
// so it is safe to share across sagas.
type TopicRouter struct {
	baseURLs map[domain.Service]string
}

// NewTopicRouter builds http://<host>:<port>/api/v1/ for every destination
func NewTopicRouter(destinations map[domain.Service]Destination) (*TopicRouter, error) {
	baseURLs := make(map[domain.Service]string, len(destinations))
	for service, d := range destinations {
		if d.Host == "" {
			return nil, errors.Errorf("no host configured for %s service", service)
		}
		if d.Port <= 0 || d.Port > 65535 {
			return nil, errors.Errorf("invalid port %d for %s service", d.Port, service)
		}
		baseURLs[service] = fmt.Sprintf("http://%s/api/v1/", net.JoinHostPort(d.Host, strconv.Itoa(d.Port)))
	}

	return &TopicRouter{baseURLs: baseURLs}, nil
}

// Resolve returns the topic's endpoint with its default suffix
func (r *TopicRouter) Resolve(topic domain.Topic) (Route, error) {
	return r.ResolveWithSuffix(topic, topic.Suffix())
}

// ResolveWithSuffix returns the topic's destination with an explicit suffix
func (r *TopicRouter) ResolveWithSuffix(topic domain.Topic, suffix string) (Route, error) {
	service, ok := topic.Service()
	if !ok {
		return Route{}, errors.Wrapf(domain.ErrUnknownTopic, "topic %s", topic)
	}

	base, ok := r.baseURLs[service]
	if !ok {
		return Route{}, errors.Wrapf(domain.ErrUnknownTopic, "no destination for %s (%s service)", topic, service)
	}

	return Route{
		Topic:   topic,
		Service: service,
		BaseURL: base,
		Suffix:  suffix,
	}, nil
}

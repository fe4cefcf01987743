package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func destinationOf(t *testing.T, srv *httptest.Server) Destination {
	t.Helper()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	return Destination{Host: host, Port: p}
}

func invokerFor(t *testing.T, srv *httptest.Server) *ServiceInvoker {
	t.Helper()

	d := destinationOf(t, srv)
	router, err := NewTopicRouter(map[domain.Service]Destination{
		domain.ServiceSeating: d,
		domain.ServicePayment: d,
		domain.ServiceMovie:   d,
		domain.ServiceGateway: d,
	})
	require.NoError(t, err)

	return NewServiceInvoker(router, 2*time.Second)
}

func TestTopicRouter_Resolve(t *testing.T) {
	router, err := NewTopicRouter(map[domain.Service]Destination{
		domain.ServiceSeating: {Host: "seating", Port: 8081},
		domain.ServicePayment: {Host: "payment", Port: 8082},
	})
	require.NoError(t, err)

	tests := []struct {
		topic domain.Topic
		want  string
	}{
		{topic: domain.TopicSeatRequest, want: "http://seating:8081/api/v1/processTopic"},
		{topic: domain.TopicSeatConfirmation, want: "http://seating:8081/api/v1/confirmation"},
		{topic: domain.TopicPaymentRequest, want: "http://payment:8082/api/v1/processTopic"},
	}

	for _, tt := range tests {
		route, err := router.Resolve(tt.topic)
		require.NoError(t, err)
		assert.Equal(t, tt.want, route.URL())
	}

	route, err := router.ResolveWithSuffix(domain.TopicSeatRequest, "status")
	require.NoError(t, err)
	assert.Equal(t, "http://seating:8081/api/v1/status", route.URL())
	assert.Equal(t, domain.ServiceSeating, route.Service)

	_, err = router.Resolve(domain.TopicCreateTicketRequest)
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)

	_, err = router.Resolve(domain.Topic(42))
	assert.ErrorIs(t, err, domain.ErrUnknownTopic)
}

func TestNewTopicRouter_Validation(t *testing.T) {
	_, err := NewTopicRouter(map[domain.Service]Destination{domain.ServiceSeating: {Port: 8081}})
	assert.Error(t, err)

	_, err = NewTopicRouter(map[domain.Service]Destination{domain.ServiceSeating: {Host: "seating"}})
	assert.Error(t, err)

	router, err := NewTopicRouter(map[domain.Service]Destination{domain.ServiceGateway: {Host: "::1", Port: 8080}})
	require.NoError(t, err)
	route, err := router.Resolve(domain.TopicMovieTicketResponse)
	require.NoError(t, err)
	assert.Equal(t, "http://[::1]:8080/api/v1/processTopic", route.URL())
}

func TestInvoke(t *testing.T) {
	var gotHeaders http.Header
	var gotBody map[string]any
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)

		switch r.URL.Query().Get("case") {
		case "empty":
		case "garbage":
			_, _ = w.Write([]byte("<html>oops</html>"))
		default:
			_, _ = w.Write([]byte(`{"topicName":"PaymentResponse","correlatorId":1001,"status":"SUCCESSFUL"}`))
		}
	}))
	defer srv.Close()

	invoker := invokerFor(t, srv)
	ctx := domain.WithCorrelatorID(context.Background(), 1001)
	req := domain.PaymentRequest{TopicName: "PaymentRequest", CorrelatorID: 1001, PaymentAmount: 12.5}

	t.Run("decodes reply", func(t *testing.T) {
		resp, exch := Invoke[domain.PaymentResponse](ctx, invoker, domain.TopicPaymentRequest, req)
		require.NoError(t, exch.Err)
		assert.Equal(t, http.StatusOK, exch.StatusCode)
		assert.True(t, resp.Succeeded())

		assert.Equal(t, "/api/v1/processTopic", gotPath)
		assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
		assert.Equal(t, "1001", gotHeaders.Get(CorrelatorIDHeader))
		assert.Equal(t, float64(1001), gotBody["correlatorId"])
	})

	t.Run("empty body", func(t *testing.T) {
		suffixed, exch := invoker.InvokeRawWithSuffix(ctx, domain.TopicPaymentRequest, "processTopic?case=empty", req)
		require.NoError(t, exch.Err)
		assert.Empty(t, suffixed)

		router := invoker.router
		empty := NewServiceInvokerWithClient(router, &http.Client{Transport: rewrite("case=empty")})
		resp, exch := Invoke[domain.PaymentResponse](ctx, empty, domain.TopicPaymentRequest, req)
		assert.ErrorIs(t, exch.Err, domain.ErrEmptyBody)
		assert.Equal(t, http.StatusOK, exch.StatusCode)
		assert.Equal(t, domain.PaymentResponse{}, resp)
	})

	t.Run("malformed body", func(t *testing.T) {
		garbage := NewServiceInvokerWithClient(invoker.router, &http.Client{Transport: rewrite("case=garbage")})
		resp, exch := Invoke[domain.PaymentResponse](ctx, garbage, domain.TopicPaymentRequest, req)
		assert.Error(t, exch.Err)
		assert.False(t, exch.OK())
		assert.Equal(t, domain.PaymentResponse{}, resp)
	})
}

// rewrite appends a query string so one test server can answer several ways
func rewrite(query string) http.RoundTripper {
	return roundTripFunc(func(r *http.Request) (*http.Response, error) {
		r.URL.RawQuery = query
		return http.DefaultTransport.RoundTrip(r)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestInvoke_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	invoker := invokerFor(t, srv)
	srv.Close()

	resp, exch := Invoke[domain.SeatResponse](context.Background(), invoker, domain.TopicSeatRequest, domain.SeatRequest{})
	assert.Error(t, exch.Err)
	assert.Zero(t, exch.StatusCode)
	assert.False(t, resp.Held())
}

func TestInvoke_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	d := destinationOf(t, srv)
	router, err := NewTopicRouter(map[domain.Service]Destination{domain.ServiceMovie: d})
	require.NoError(t, err)
	invoker := NewServiceInvoker(router, 50*time.Millisecond)

	resp, exch := Invoke[domain.CreateTicketResponse](context.Background(), invoker, domain.TopicCreateTicketRequest, domain.CreateTicketRequest{})
	assert.Error(t, exch.Err)
	assert.False(t, resp.Issued())
}

func TestInvoke_UnroutedTopic(t *testing.T) {
	router, err := NewTopicRouter(map[domain.Service]Destination{})
	require.NoError(t, err)

	_, exch := Invoke[domain.SeatResponse](context.Background(), NewServiceInvoker(router, time.Second), domain.TopicSeatRequest, nil)
	assert.True(t, errors.Is(exch.Err, domain.ErrUnknownTopic))
}

func TestClients(t *testing.T) {
	var confirmReply atomic.Value
	confirmReply.Store(`"BOOKED"`)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/processTopic", func(w http.ResponseWriter, r *http.Request) {
		var envelope struct {
			TopicName string `json:"topicName"`
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &envelope)

		switch envelope.TopicName {
		case "SeatRequest":
			_, _ = w.Write([]byte(`{"correlatorId":1001,"movieName":"Inception","seatNumber":"E6","status":"HOLDING","showtime":1762824600000,"timestamp":1762824600000}`))
		case "CreateTicketRequest":
			_, _ = w.Write([]byte(`{"correlatorId":1001,"seatNumber":"E6","ticketId":8060001}`))
		case "MovieTicketResponse":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	mux.HandleFunc("/api/v1/confirmation", func(w http.ResponseWriter, r *http.Request) {
		var correlatorID int
		if err := json.NewDecoder(r.Body).Decode(&correlatorID); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(confirmReply.Load().(string)))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	invoker := invokerFor(t, srv)
	ctx := context.Background()

	seat, exch := NewSeatingClient(invoker).HoldSeat(ctx, domain.SeatRequest{TopicName: "SeatRequest", CorrelatorID: 1001})
	require.NoError(t, exch.Err)
	assert.True(t, seat.Held())

	status, exch := NewSeatingClient(invoker).ConfirmSeat(ctx, domain.SeatConfirmation{CorrelatorID: 1001})
	require.NoError(t, exch.Err)
	assert.Equal(t, domain.SeatStatusBooked, status)

	confirmReply.Store("BOOKED")
	status, exch = NewSeatingClient(invoker).ConfirmSeat(ctx, domain.SeatConfirmation{CorrelatorID: 1001})
	require.NoError(t, exch.Err)
	assert.Equal(t, domain.SeatStatusBooked, status)

	confirmReply.Store("no idea")
	status, exch = NewSeatingClient(invoker).ConfirmSeat(ctx, domain.SeatConfirmation{CorrelatorID: 1001})
	assert.Error(t, exch.Err)
	assert.Empty(t, status)

	ticket, exch := NewTicketingClient(invoker).CreateTicket(ctx, domain.CreateTicketRequest{TopicName: "CreateTicketRequest"})
	require.NoError(t, exch.Err)
	require.True(t, ticket.Issued())
	assert.Equal(t, 8060001, *ticket.TicketID)

	exch = NewGatewayClient(invoker).SendMovieTicketResponse(ctx, domain.MovieTicketResponse{TopicName: "MovieTicketResponse"})
	assert.True(t, exch.OK())

	pay, exch := NewPaymentClient(invoker).Charge(ctx, domain.PaymentRequest{TopicName: "Unrouted"})
	assert.Equal(t, http.StatusBadRequest, exch.StatusCode)
	assert.ErrorIs(t, exch.Err, domain.ErrEmptyBody)
	assert.False(t, pay.Succeeded())
}

func TestClients_ErrorStatusWithBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		if strings.HasSuffix(r.URL.Path, "/confirmation") {
			_, _ = w.Write([]byte("BOOKED"))
			return
		}
		_, _ = w.Write([]byte(`{"correlatorId":1001,"status":"HOLDING"}`))
	}))
	defer srv.Close()

	invoker := invokerFor(t, srv)
	ctx := context.Background()

	seat, exch := NewSeatingClient(invoker).HoldSeat(ctx, domain.SeatRequest{TopicName: "SeatRequest", CorrelatorID: 1001})
	assert.Equal(t, http.StatusInternalServerError, exch.StatusCode)
	assert.Error(t, exch.Err)
	assert.False(t, seat.Held())

	status, exch := NewSeatingClient(invoker).ConfirmSeat(ctx, domain.SeatConfirmation{CorrelatorID: 1001})
	assert.Error(t, exch.Err)
	assert.Empty(t, status)
}

func TestSeatingClient_ConfirmSeatBody(t *testing.T) {
	var (
		body        atomic.Value
		contentType atomic.Value
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body.Store(string(b))
		contentType.Store(r.Header.Get("Content-Type"))
		assert.Equal(t, "/api/v1/confirmation", r.URL.Path)
		_, _ = w.Write([]byte("BOOKED"))
	}))
	defer srv.Close()

	status, exch := NewSeatingClient(invokerFor(t, srv)).ConfirmSeat(context.Background(), domain.SeatConfirmation{CorrelatorID: 1001})
	require.NoError(t, exch.Err)
	assert.Equal(t, domain.SeatStatusBooked, status)
	assert.Equal(t, "1001", body.Load())
	assert.Equal(t, "application/json", contentType.Load())
}

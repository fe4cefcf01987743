package domain

import "net/http"

// FailureStage is the saga step a failure is attributed to. Stages number
// the failing component, not the call order: seat confirmation runs third
// but is stage 2.
type FailureStage int

const (
	StageSeatHold     FailureStage = 1
	StageSeatConfirm  FailureStage = 2
	StagePayment      FailureStage = 3
	StageTicket       FailureStage = 4
	StageGatewayReply FailureStage = 5
)

// Failure is what the caller sees for a failed saga
type Failure struct {
	Stage      FailureStage
	Component  string
	StatusCode int
}

func (f Failure) Message() string {
	return "Orchestration failed at the " + f.Component
}

var failures = map[FailureStage]Failure{
	StageSeatHold:     {Component: "Seating Service (HOLDING)", StatusCode: http.StatusConflict},
	StageSeatConfirm:  {Component: "Seating Service (BOOKING)", StatusCode: http.StatusInternalServerError},
	StagePayment:      {Component: "Payment Service", StatusCode: http.StatusBadGateway},
	StageTicket:       {Component: "Movie Service", StatusCode: http.StatusBadGateway},
	StageGatewayReply: {Component: "API Gateway", StatusCode: http.StatusBadGateway},
}

// Classify maps any stage to its failure. Unknown stages are a 400.
func Classify(stage FailureStage) Failure {
	f, ok := failures[stage]
	if !ok {
		f = Failure{Component: "Unknown Stage", StatusCode: http.StatusBadRequest}
	}
	f.Stage = stage
	return f
}

const SuccessMessage = "Orchestration completed successfully!"

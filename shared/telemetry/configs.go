package telemetry

// OrchestratorServiceConfig is the telemetry configuration for the saga orchestrator
var OrchestratorServiceConfig = Config{
	ServiceName:    "service-orchestrator",
	ServiceVersion: "1.0.0",
}

// WithOTLPEndpoint sets the OTLP endpoint for a config
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	return c
}

// WithVersion sets the service version for a config
func (c Config) WithVersion(version string) Config {
	c.ServiceVersion = version
	return c
}

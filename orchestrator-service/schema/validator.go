package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const baseURL = "https://schemas.movieticket.dev/"

//go:embed schemas/*.json
var schemaFiles embed.FS

var ErrNoSchema = errors.New("no schema for topic")

// topics are the schemas a message can be validated against. Other embedded
// files are only reachable through $ref.
var topics = []string{"MovieTicketRequest", "PaymentRequest"}

// Validator checks inbound messages against the embedded schema for their topic
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator loads every embedded schema and compiles the topic ones.
// A topic schema file is named after its topic.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	entries, err := fs.ReadDir(schemaFiles, "schemas")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list schemas")
	}

	for _, entry := range entries {
		b, err := schemaFiles.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", entry.Name())
		}
		if err := compiler.AddResource(baseURL+entry.Name(), bytes.NewReader(b)); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", entry.Name())
		}
	}

	schemas := make(map[string]*jsonschema.Schema, len(topics))
	for _, topic := range topics {
		s, err := compiler.Compile(baseURL + topic + ".json")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compile %s", topic)
		}
		schemas[topic] = s
	}

	return &Validator{schemas: schemas}, nil
}

// Validate returns nil when payload satisfies the topic's schema
func (v *Validator) Validate(topicName string, payload []byte) error {
	s, ok := v.schemas[topicName]
	if !ok {
		return errors.Wrap(ErrNoSchema, topicName)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(err, "payload is not JSON")
	}

	if err := s.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return errors.New(summarize(verr))
		}
		return err
	}

	return nil
}

// Topics lists the topics that have a schema
func (v *Validator) Topics() []string {
	topics := make([]string, 0, len(v.schemas))
	for t := range v.schemas {
		topics = append(topics, t)
	}
	return topics
}

// summarize flattens the error tree into "location: message" pairs of its leaves
func summarize(verr *jsonschema.ValidationError) string {
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			leaves = append(leaves, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(leaves, "; ")
}

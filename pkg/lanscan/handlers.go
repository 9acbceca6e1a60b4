// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package lanscan

import (
	"encoding/json"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telekom/lanscan/internal/logger"
	"github.com/telekom/lanscan/pkg"
	"github.com/telekom/lanscan/pkg/api"
	"github.com/telekom/lanscan/pkg/export"
	"github.com/telekom/lanscan/pkg/scan"
	"gopkg.in/yaml.v3"
)

// progressResponse is the body of the progress endpoint
type progressResponse struct {
	scan.Progress
	Finished bool         `json:"finished"`
	Request  scan.Request `json:"request"`
}

// errorResponse is the body of failed requests
type errorResponse struct {
	Error string `json:"error"`
}

const errNoScan = "no scan has been started"

func (l *Lanscan) handleMetrics(w http.ResponseWriter, r *http.Request) {
	registry := l.metrics.GetRegistry()
	promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}).ServeHTTP(w, r)
}

func (l *Lanscan) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess := l.Session()
	if sess == nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: errNoScan})
		return
	}
	writeJSON(w, r, http.StatusOK, progressResponse{
		Progress: sess.Progress(),
		Finished: sess.Finished(),
		Request:  sess.Request(),
	})
}

func (l *Lanscan) handleResults(w http.ResponseWriter, r *http.Request) {
	sess := l.Session()
	if sess == nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: errNoScan})
		return
	}
	writeJSON(w, r, http.StatusOK, export.Records(sess.Results()))
}

// handleOpenAPI serves the schema of the api as yaml, or as json
// if the client accepts it.
func (l *Lanscan) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	doc, err := openAPIDoc()
	if err != nil {
		log.Error("Failed to create openapi", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	marshaler, mime := yaml.Marshal, "text/yaml"
	if r.Header.Get("Accept") == "application/json" {
		marshaler, mime = json.Marshal, "application/json"
	}

	b, err := marshaler(doc)
	if err != nil {
		log.Error("Failed to marshal openapi", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// openAPIDoc describes the scan endpoints
func openAPIDoc() (*openapi3.T, error) {
	records, err := openapi3gen.NewSchemaRefForValue([]scan.Record{}, openapi3.Schemas{})
	if err != nil {
		return nil, api.NewErrCreateOpenapiSchema("scan results", err)
	}
	progress, err := openapi3gen.NewSchemaRefForValue(progressResponse{}, openapi3.Schemas{})
	if err != nil {
		return nil, api.NewErrCreateOpenapiSchema("scan progress", err)
	}

	version := pkg.Version
	if version == "" {
		version = "dev"
	}

	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "lanscan API",
			Description: "Progress and results of the running lanscan scan",
			Version:     version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/v1/scan/progress", getOperation("Progress of the current scan", progress)),
			openapi3.WithPath("/v1/scan/results", getOperation("Hosts found by the current scan, ordered by address", records)),
		),
	}, nil
}

func getOperation(description string, schema *openapi3.SchemaRef) *openapi3.PathItem {
	notFound := openapi3.NewResponse().WithDescription(errNoScan)
	return &openapi3.PathItem{
		Get: &openapi3.Operation{
			Description: description,
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema),
				}),
				openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{Value: notFound}),
			),
		},
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("Failed to encode response", "error", err)
	}
}

package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/business-calculator/internal/config"
	"github.com/iwvelando/business-calculator/internal/forecast"
	"github.com/iwvelando/business-calculator/internal/server/router"
	"github.com/iwvelando/business-calculator/pkg/constants"
	"github.com/iwvelando/business-calculator/pkg/export"
	"github.com/iwvelando/business-calculator/pkg/finance"
	"github.com/iwvelando/business-calculator/pkg/format"
	"github.com/iwvelando/business-calculator/pkg/output"
	"github.com/iwvelando/business-calculator/pkg/validation"
	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed static/*
var staticFiles embed.FS

// WorkbookFilename is suggested to clients downloading the XLSX export.
const WorkbookFilename = "business-forecast.xlsx"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler constructs the HTTP handler that serves the dashboard and the
// calculation API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}

	rt := router.New(
		router.WithRoutes(h.routes()...),
		router.WithNotFound(h.notFound(http.FileServer(http.FS(sub)))),
		router.WithMethodNotAllowed(http.HandlerFunc(h.handleMethodNotAllowed)),
	)

	return chain(logger).Then(rt)
}

func (h *handler) routes() []router.Route {
	return []router.Route{
		{Path: "/healthcheck", Method: http.MethodGet, Handler: http.HandlerFunc(h.handleHealthcheck)},
		{Path: "/api/version", Method: http.MethodGet, Handler: http.HandlerFunc(h.handleVersion)},
		{Path: "/api/defaults", Method: http.MethodGet, Handler: http.HandlerFunc(h.handleDefaults)},
		{Path: "/api/calculate", Method: http.MethodGet, Handler: http.HandlerFunc(h.handleCalculateQuery)},
		{Path: "/api/calculate", Method: http.MethodPost, Handler: http.HandlerFunc(h.handleCalculate)},
		{Path: "/api/forecast", Method: http.MethodPost, Handler: http.HandlerFunc(h.handleForecast)},
		{Path: "/api/export/xlsx", Method: http.MethodPost, Handler: http.HandlerFunc(h.handleExportXLSX)},
	}
}

type calculationResponse struct {
	forecast.Forecast
	Display    displayValues          `json:"display"`
	CSV        string                 `json:"csv"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml"`
	Duration   string                 `json:"duration"`
}

// displayValues holds the formatted amounts, keyed like the reports.
type displayValues struct {
	KeyMetrics      map[string]string `json:"keyMetrics"`
	IncomeStatement map[string]string `json:"incomeStatement"`
	CashFlow        map[string]string `json:"cashFlow"`
}

func (h *handler) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, finance.DefaultAssumptions())
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	payload, ok := h.readJSONPayload(w, r, op)
	if !ok {
		return
	}

	conf, err := decodeCalculationPayload(payload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runCalculation(w, r, conf, nil, start, op)
}

func (h *handler) handleCalculateQuery(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculateQuery"
	start := time.Now()

	assumptions := make(map[string]interface{})
	chart := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		if key == "startMonth" {
			chart[key] = values[0]
			continue
		}
		assumptions[key] = values[0]
	}

	conf, err := decodeCalculationPayload(map[string]interface{}{
		"assumptions": assumptions,
		"chart":       chart,
	})
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runCalculation(w, r, conf, nil, start, op)
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runCalculation(w, r, *conf, configMap, start, op)
}

func (h *handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportXLSX"

	payload, ok := h.readJSONPayload(w, r, op)
	if !ok {
		return
	}

	conf, err := decodeCalculationPayload(payload)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if warning := validation.ValidateStartMonth(conf.Chart.StartMonth); warning != "" {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, warning, op)
		return
	}

	result, err := forecast.GetForecast(h.logger, conf)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, result); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to export workbook: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", WorkbookFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write workbook response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.handleMethodNotAllowed")
}

// notFound answers unknown API paths with JSON and everything else with the
// embedded dashboard.
func (h *handler) notFound(static http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h.respondErrorWithOp(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), "server.notFound")
			return
		}
		static.ServeHTTP(w, r)
	})
}

func (h *handler) runCalculation(w http.ResponseWriter, r *http.Request, conf config.Configuration, configMap map[string]interface{}, start time.Time, op string) {
	if warning := validation.ValidateStartMonth(conf.Chart.StartMonth); warning != "" {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, warning, op)
		return
	}

	result, err := forecast.GetForecast(h.logger, conf)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}

	effective := config.Configuration{Assumptions: result.Assumptions, Chart: conf.Chart}
	configYAML, err := yaml.Marshal(effective)
	if err != nil {
		h.logger.Warn("failed to marshal effective configuration",
			zap.String("op", op),
			zap.Error(err),
		)
	}

	elapsed := time.Since(start)

	response := calculationResponse{
		Forecast:   result,
		Display:    buildDisplay(result),
		CSV:        output.CsvString(result),
		Config:     configMap,
		ConfigYAML: string(configYAML),
		Duration:   elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Float64("revenue", result.Monthly.Revenue),
		zap.Float64("net_margin", result.Monthly.NetMargin),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// readJSONPayload decodes a bounded JSON object body. An empty body is an
// empty payload.
func (h *handler) readJSONPayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}

	var payload map[string]interface{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return nil, false
		}
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

// decodeCalculationPayload accepts {"assumptions": {...}, "chart": {...}} or a
// bare assumptions object. Missing fields keep their defaults and numbers may
// be sent as strings.
func decodeCalculationPayload(payload map[string]interface{}) (config.Configuration, error) {
	conf := config.Default()

	assumptions := payload
	if raw, ok := payload["assumptions"]; ok {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return conf, errors.New("invalid assumptions payload: expected object")
		}
		assumptions = m
	} else if _, ok := payload["chart"]; ok {
		assumptions = make(map[string]interface{}, len(payload))
		for key, value := range payload {
			if key != "chart" {
				assumptions[key] = value
			}
		}
	}

	if raw, ok := payload["chart"]; ok {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return conf, errors.New("invalid chart payload: expected object")
		}
		if err := weakDecode(m, &conf.Chart); err != nil {
			return conf, fmt.Errorf("invalid chart payload: %w", err)
		}
	}

	if err := weakDecode(assumptions, &conf.Assumptions); err != nil {
		return conf, fmt.Errorf("invalid assumptions payload: %w", err)
	}
	return conf, nil
}

func weakDecode(input map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func buildDisplay(result forecast.Forecast) displayValues {
	display := displayValues{
		KeyMetrics:      make(map[string]string, len(result.KeyMetrics)),
		IncomeStatement: make(map[string]string, len(result.IncomeStatement.Lines)),
		CashFlow:        make(map[string]string),
	}
	for _, metric := range result.KeyMetrics {
		display.KeyMetrics[metric.Key] = metric.Display()
	}
	for _, line := range result.IncomeStatement.Lines {
		display.IncomeStatement[line.Key] = format.Currency(line.Amount)
	}
	for _, line := range result.CashFlow.Lines() {
		display.CashFlow[line.Key] = format.Currency(line.Amount)
	}
	return display
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(h.logger, w, status, payload)
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

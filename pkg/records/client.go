// Package records retrieves one page of the /records collection and
// summarizes it for clients: page cursors, the ids on the page, the open
// records annotated with whether their color is primary, and the number of
// closed records with a primary color.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/softdev1029/records-fetch/pkg/logging"
)

const instrumentationName = "github.com/softdev1029/records-fetch/pkg/records"

// Client retrieves and summarizes /records pages. It holds no per-call
// state and may be used from multiple goroutines.
type Client struct {
	httpClient *http.Client
	recorder   logging.Recorder
	tracer     trace.Tracer
	queryOpts  []QueryOption
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the endpoint root, e.g. "http://localhost:3000".
	// "/records" is appended unless already present.
	BaseURL string `validate:"required,url"`

	// UserAgent header sent with every request. Optional.
	UserAgent string

	// HTTPClient performs the request. Its timeout, if any, is the only
	// bound on how long Retrieve may block.
	HTTPClient *http.Client `validate:"-"`

	// Recorder receives a diagnostic for every failed retrieval.
	Recorder logging.Recorder `validate:"-"`

	// TracerProvider creates the records.retrieve span. Nil means noop.
	TracerProvider trace.TracerProvider `validate:"-"`

	// SingleColorPadding sends a one-color filter as the color plus an
	// empty color parameter, which is what the records server expects.
	SingleColorPadding bool
}

// DefaultConfig returns a configuration that talks to baseURL and reports
// diagnostics through the global zerolog logger.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:            baseURL,
		UserAgent:          "records-fetch/0.1.0",
		HTTPClient:         &http.Client{},
		Recorder:           logging.NewRecorder(logging.NewLogger("records-client")),
		SingleColorPadding: true,
	}
}

// New creates a new records client.
func New(cfg Config) (*Client, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := logging.NewLogger("records-client")

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = logging.NewRecorder(logger)
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	var queryOpts []QueryOption
	if !cfg.SingleColorPadding {
		queryOpts = append(queryOpts, WithoutSingleColorPadding())
	}

	return &Client{
		httpClient: httpClient,
		recorder:   recorder,
		tracer:     tp.Tracer(instrumentationName),
		queryOpts:  queryOpts,
		config:     cfg,
		logger:     logger,
	}, nil
}

// Retrieve fetches one page of records and summarizes it.
//
// Failures are reported to the configured Recorder and never panic. The
// returned error tells the two failure shapes apart (see Kind):
//   - *StatusError: the server answered with a status other than 200. The
//     Result is an empty page with no cursors.
//   - *TransportError: the request did not complete or the body was not a
//     record list. The Result is the zero value.
func (c *Client) Retrieve(ctx context.Context, opts Options) (Result, error) {
	page := opts.page()

	ctx, span := c.tracer.Start(ctx, "records.retrieve", trace.WithAttributes(
		attribute.Int("records.page", page),
		attribute.Int("records.colors", len(opts.Colors)),
	))
	defer span.End()

	u, err := BuildURL(c.config.BaseURL, page, opts.Colors, c.queryOpts...)
	if err != nil {
		err = c.transportFailure(c.config.BaseURL, "", ErrorClassNetwork, err)
		c.endSpan(span, err)
		return Result{}, err
	}

	raw, err := c.fetch(ctx, u)
	if err != nil {
		c.endSpan(span, err)
		if Kind(err) == FailureHTTP {
			return Result{IDs: []int{}, Open: []OpenRecord{}}, err
		}
		return Result{}, err
	}

	res := Shape(raw, page)

	c.logger.Debug().
		Int("page", page).
		Int("received", len(raw)).
		Int("kept", len(res.IDs)).
		Int("open", len(res.Open)).
		Int("closed_primary", res.ClosedPrimaryCount).
		Bool("has_next", res.NextPage != nil).
		Msg("Shaped records page")

	c.endSpan(span, nil)
	return res, nil
}

// fetch performs the single GET and decodes a 200 body.
func (c *Client) fetch(ctx context.Context, u *url.URL) ([]Record, error) {
	target := u.String()
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, c.transportFailure(target, requestID, ErrorClassNetwork, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	c.logger.Debug().
		Str("url", target).
		Str("request_id", requestID).
		Msg("Executing records request")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues("network_error").Inc()
		return nil, c.transportFailure(target, requestID, ErrorClassNetwork, err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)

		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        target,
		}
		requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		errorsTotal.WithLabelValues(string(statusErr.Class())).Inc()

		c.recorder.Record(logging.Diagnostic{
			Level:   logging.LevelWarn,
			Message: "records request failed",
			Fields: map[string]any{
				"url":         target,
				"request_id":  requestID,
				"status_code": resp.StatusCode,
				"status_text": statusErr.StatusText(),
				"error_class": string(statusErr.Class()),
			},
		})
		return nil, statusErr
	}

	var raw []Record
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		requestsTotal.WithLabelValues("decode_error").Inc()
		return nil, c.transportFailure(target, requestID, ErrorClassDecode, fmt.Errorf("decode body: %w", err))
	}
	if raw == nil {
		requestsTotal.WithLabelValues("decode_error").Inc()
		return nil, c.transportFailure(target, requestID, ErrorClassDecode, errNullBody)
	}

	requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	itemsReceived.Observe(float64(len(raw)))

	return raw, nil
}

// transportFailure records a diagnostic for a request that produced no
// usable response and returns the matching error.
func (c *Client) transportFailure(target, requestID string, class ErrorClass, err error) error {
	errorsTotal.WithLabelValues(string(class)).Inc()

	fields := map[string]any{
		"url":         target,
		"error_class": string(class),
	}
	if requestID != "" {
		fields["request_id"] = requestID
	}

	c.recorder.Record(logging.Diagnostic{
		Level:   logging.LevelError,
		Message: "records request did not complete",
		Fields:  fields,
		Err:     err,
	})

	return &TransportError{URL: target, Class: class, Err: err}
}

func (c *Client) endSpan(span trace.Span, err error) {
	span.SetAttributes(attribute.String("records.outcome", Kind(err).String()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

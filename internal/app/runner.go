package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/httpie/internal/batch"
	"github.com/samvad-hq/httpie/internal/config"
	"github.com/samvad-hq/httpie/internal/domain"
	"github.com/samvad-hq/httpie/internal/logger"
	"github.com/samvad-hq/httpie/internal/render"
	"github.com/samvad-hq/httpie/pkg/httpclient"
	"go.uber.org/zap"
)

// Streams are the process I/O handles the runner writes to.
type Streams struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// Runner executes one parsed command: dispatch, render, and the status gate.
type Runner struct {
	client      httpclient.Client
	renderer    *render.Renderer
	reader      *batch.Reader
	batchPolicy string
	log         logger.Logger
}

// NewRunner wires a runner from explicit collaborators.
func NewRunner(client httpclient.Client, renderer *render.Renderer, reader *batch.Reader, batchPolicy string, log logger.Logger) (*Runner, error) {
	if client == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer must not be nil")
	}
	if reader == nil {
		return nil, fmt.Errorf("batch reader must not be nil")
	}
	switch batchPolicy {
	case "":
		batchPolicy = config.BatchAbort
	case config.BatchAbort, config.BatchContinue:
	default:
		return nil, fmt.Errorf("unsupported batch policy %q", batchPolicy)
	}
	return &Runner{
		client:      client,
		renderer:    renderer,
		reader:      reader,
		batchPolicy: batchPolicy,
		log:         logger.Ensure(log),
	}, nil
}

// Build wires the production runner from config.
func Build(cfg *config.Config, streams Streams, log logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := httpclient.Options{
		Timeout:   cfg.Timeout,
		Accept:    cfg.Accept,
		UserAgent: cfg.UserAgent,
	}
	if logger.S != nil {
		opts.Logger = logger.S.Named("resty").WithOptions(zap.AddCallerSkip(1))
	}
	client := httpclient.NewRestyClient(opts)

	renderer := render.New(streams.Out, render.NewStyler(cfg.Color, streams.Out), render.DefaultFormatterRegistry())
	reader := batch.NewReader(streams.Out, streams.Err, streams.In, log)

	logger.Ensure(log).DebugObj("runner configured", "runner_config", map[string]any{
		"user_agent":   cfg.UserAgent,
		"color":        cfg.Color,
		"timeout":      cfg.Timeout.String(),
		"batch_policy": cfg.BatchPolicy,
	})
	return NewRunner(client, renderer, reader, cfg.BatchPolicy, log)
}

// Run dispatches cmd. The expected status is checked for single GET and POST only.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("runner is not initialized")
	}

	switch cmd.Verb {
	case domain.VerbGet:
		if cmd.IsBatch() {
			return r.runBatch(ctx, cmd.Source)
		}
		return r.runSingle(ctx, domain.NewGetSpec(cmd.URL), cmd.ExpectedStatus)
	case domain.VerbPost:
		return r.runSingle(ctx, domain.NewPostSpec(cmd.URL, cmd.Pairs), cmd.ExpectedStatus)
	default:
		return fmt.Errorf("unsupported verb %q", cmd.Verb)
	}
}

func (r *Runner) runSingle(ctx context.Context, spec domain.RequestSpec, expected int) error {
	view, err := r.dispatch(ctx, spec)
	if err != nil {
		return err
	}
	if err := r.renderer.Render(view); err != nil {
		return fmt.Errorf("render %s: %w", spec.URL, err)
	}
	return checkStatus(expected, view.StatusCode)
}

func (r *Runner) runBatch(ctx context.Context, source string) error {
	urls, err := r.reader.Load(source)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		r.log.WarnObj("url list has no valid entries", "source", source)
		return nil
	}

	var errs []error
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.runOne(ctx, url)
		if err == nil {
			continue
		}
		if r.batchPolicy == config.BatchAbort || ctx.Err() != nil {
			return err
		}
		r.log.ErrorObj("batch request failed", "batch_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d batch requests failed: %w", len(errs), len(urls), errors.Join(errs...))
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, url string) error {
	view, err := r.dispatch(ctx, domain.NewGetSpec(url))
	if err != nil {
		return err
	}
	if err := r.renderer.Render(view); err != nil {
		return fmt.Errorf("render %s: %w", url, err)
	}
	return nil
}

// dispatch sends spec and converts the reply into a ResponseView.
func (r *Runner) dispatch(ctx context.Context, spec domain.RequestSpec) (domain.ResponseView, error) {
	body, err := spec.JSONBody()
	if err != nil {
		return domain.ResponseView{}, fmt.Errorf("encode body: %w", err)
	}

	requestID := uuid.NewString()
	start := time.Now()
	r.log.DebugObj("request dispatched", "request_meta", map[string]any{
		"request_id": requestID,
		"method":     spec.Method,
		"url":        spec.URL,
		"body_bytes": len(body),
	})

	resp, err := r.client.Execute(ctx, spec.Method, spec.URL, body, nil)
	if err != nil {
		return domain.ResponseView{}, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, spec.Method, spec.URL, err)
	}

	r.log.DebugObj("response received", "response_meta", map[string]any{
		"request_id": requestID,
		"status":     resp.StatusCode(),
		"body_bytes": len(resp.Body()),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	if bodyErr := resp.BodyErr(); bodyErr != nil {
		r.log.WarnObj("response body incomplete", "body_error", map[string]any{
			"request_id": requestID,
			"url":        spec.URL,
			"error":      fmt.Errorf("%w: %v", domain.ErrBodyRead, bodyErr).Error(),
		})
	}

	return domain.ResponseView{
		Proto:      resp.Proto(),
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header(),
		Body:       resp.Body(),
		BodyErr:    resp.BodyErr(),
	}, nil
}

// checkStatus returns an ExitError when expected is set and differs from actual.
func checkStatus(expected, actual int) error {
	if expected == 0 || expected == actual {
		return nil
	}
	return &domain.ExitError{Code: 1, Expected: expected, Actual: actual}
}

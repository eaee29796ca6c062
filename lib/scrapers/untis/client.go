package untis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"monitorboard/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/untis")

// Client queries the public substitution monitor of a school. It holds no
// per-call state, a single Client can serve concurrent fetches.
type Client struct {
	http    *resty.Client
	baseUrl string
}

type ClientOptions struct {
	// BaseUrl overrides the monitor server, defaults to DefaultBaseUrl.
	BaseUrl string
}

func NewClient(opts ClientOptions) Client {
	base := opts.BaseUrl
	if base == "" {
		base = DefaultBaseUrl
	}

	client := resty.New()
	client.SetHeader("content-type", "application/json")
	client.SetHeader("x-requested-with", "XMLHttpRequest")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/untis/http")

	return Client{
		http:    client,
		baseUrl: base,
	}
}

// FetchBoard performs one POST against the monitor endpoint and returns
// the board with rows narrowed down to opts.FilterGroups (absent elements
// are always left untouched). One call is one request, there is no retry.
//
// Failures are classified: *ConfigurationError before any I/O,
// *TransportError for connection/status problems, *ParseError for bodies
// that aren't the expected envelope, *APIError for domain errors the
// endpoint reports inside a 200 body.
func (c Client) FetchBoard(ctx context.Context, identity SchoolIdentity, opts QueryOptions) (*Board, error) {
	ctx, span := tracer.Start(ctx, "client:FetchBoard")
	defer span.End()

	if err := identity.validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("school", identity.SchoolName),
		attribute.Int("date_offset", opts.DateOffset),
	)

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(buildBody(identity, opts)).
		Post(substitutionLink(c.baseUrl, identity.SchoolName))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "monitor request failed")
		return nil, &TransportError{Err: err}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "monitor request returned bad status")
		return nil, &TransportError{
			StatusCode: res.StatusCode(),
			Body:       res.String(),
		}
	}

	var env envelope
	if err := json.Unmarshal(res.Body(), &env); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode monitor response")
		return nil, &ParseError{Err: err}
	}
	if env.Error != nil {
		span.SetStatus(codes.Error, env.Error.Message)
		return nil, &APIError{
			Code:    env.Error.Code,
			Message: env.Error.Message,
		}
	}
	if env.Payload == nil {
		err := errors.New("response contains neither payload nor error")
		span.SetStatus(codes.Error, err.Error())
		return nil, &ParseError{Err: err}
	}

	board := env.Payload
	board.Rows = FilterRows(board.Rows, opts.FilterGroups)
	return board, nil
}

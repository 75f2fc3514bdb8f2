package jaeger

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitGlobalTracer wires the jaeger tracer for the whole process. Returns a
// closer the caller flushes on shutdown. An empty hostPort disables
// reporting but keeps span plumbing alive.
func InitGlobalTracer(serviceName, hostPort string) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: hostPort,
			LogSpans:           false,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}

	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}

func StartSpanFromContext(ctx context.Context, spanName string, req interface{}) (opentracing.Span, context.Context) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, spanName)

	dbSpan.SetTag("request", req)
	dbSpan.LogKV("event", "request", "value", req)
	return dbSpan, ctx
}

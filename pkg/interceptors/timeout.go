// interceptors — серверные gRPC-интерсепторы: таймаут, recover, логирование.
// В mensa-scraper ими обвязан health-сервер режима serve.
package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// WithTimeout навешивает таймаут d на контекст запроса, если дедлайна ещё нет.
//
// Контракт:
//  1. d <= 0 — handler вызывается с исходным ctx;
//  2. deadline уже задан — не модифицируется;
//  3. иначе — context.WithTimeout(ctx, d), cancel вызывается после handler.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if d <= 0 {
			return handler(ctx, req)
		}

		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}

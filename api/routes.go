package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/deal-ledger/internal/handlers/v1/report"
	"github.com/carson-networks/deal-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/deal-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/deal-ledger/internal/logging"
	"github.com/carson-networks/deal-ledger/internal/operator"
	"github.com/carson-networks/deal-ledger/internal/service"
)

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	Service        *service.Service
	Operator       *operator.OperatorDelegator
	RequestTimeout time.Duration
}

// Handler builds the router: the huma API under /v1 and the plain status
// endpoint.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Operator)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Deal Ledger API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))
	api.UseMiddleware(r.withTimeout)

	ledger := r.Service.Ledger
	transaction.NewRecordMessageHandler(ledger).Register(api)
	transaction.NewCreateTransactionHandler(ledger).Register(api)
	transaction.NewListTransactionsHandler(ledger).Register(api)
	transaction.NewClearTransactionsHandler(ledger).Register(api)
	report.NewCommissionHandler(ledger).Register(api)
	report.NewUserTransactionsHandler(ledger).Register(api)

	return mux
}

func (r *Rest) withTimeout(ctx huma.Context, next func(huma.Context)) {
	if r.RequestTimeout <= 0 {
		next(ctx)
		return
	}
	timeoutCtx, cancel := context.WithTimeout(ctx.Context(), r.RequestTimeout)
	defer cancel()
	next(huma.WithContext(ctx, timeoutCtx))
}

// Serve listens until ctx is canceled, then drains in-flight requests. It
// returns only after the drain finishes, so callers may stop the operator
// right after.
func (r *Rest) Serve(ctx context.Context) {
	ln, err := net.Listen("tcp", ":"+r.Port)
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return
	}
	r.serve(ctx, ln, r.Handler())
}

func (r *Rest) serve(ctx context.Context, ln net.Listener, handler http.Handler) {
	server := http.Server{
		Handler:           handler,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      r.RequestTimeout + time.Duration(30)*time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(10)*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("addr", ln.Addr().String()).Info("HttpServer.Serve.listening")
	err := server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return
	}
	<-shutdownDone
	r.Logger.Info("HttpServer.Serve.shutting down")
}

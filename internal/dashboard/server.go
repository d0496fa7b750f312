// Package dashboard is the local read-mostly HTTP surface over the session
// state: the cart, the comparison list and cached marketplace views. It is
// a localhost convenience, not the remote API.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	addr    string
	log     *slog.Logger
	cart    *CartHandler
	compare *CompareHandler
	catalog *CatalogHandler
}

func NewServer(addr string, log *slog.Logger, cart *CartHandler, compare *CompareHandler, catalog *CatalogHandler) *Server {
	return &Server{
		addr:    addr,
		log:     log,
		cart:    cart,
		compare: compare,
		catalog: catalog,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(s.log))

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.cart.GetCart)
		r.Delete("/", s.cart.ClearCart)
		r.Post("/items", s.cart.AddItem)
		r.Put("/items/{product_id}", s.cart.UpdateQuantity)
		r.Delete("/items/{product_id}", s.cart.RemoveItem)
	})

	r.Route("/compare", func(r chi.Router) {
		r.Get("/", s.compare.GetList)
		r.Delete("/", s.compare.ClearList)
		r.Post("/items", s.compare.AddItem)
		r.Delete("/items/{product_id}", s.compare.RemoveItem)
	})

	r.Get("/products", s.catalog.ListProducts)
	r.Get("/orders", s.catalog.ListOrders)
	r.Get("/payments", s.catalog.ListPayments)

	return otelhttp.NewHandler(r, "dashboard")
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

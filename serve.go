package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/oahshtsua/lab/bstlab/internal/bst"
	"github.com/oahshtsua/lab/bstlab/internal/logger"
	"github.com/oahshtsua/lab/bstlab/internal/store"
)

// maxBuildBody caps the JSON body of a tree build.
const maxBuildBody = 1 << 20

type application struct {
	tlogger logger.TransactionLogger
	store   store.TreeStore
	log     *slog.Logger
}

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "serve one shared tree over HTTP",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "listen port",
			Value:   5000,
			EnvVars: []string{"BSTLAB_PORT"},
		},
	},
	Action: func(cctx *cli.Context) error {
		ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tlogger, err := openJournal(cctx)
		if err != nil {
			return err
		}
		defer tlogger.Close()

		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cctx.Int("port")))
		if err != nil {
			return fmt.Errorf("unable to bind port: %w", err)
		}

		app := &application{
			tlogger: tlogger,
			store:   store.NewMemoryStore(store.WithJournal(tlogger)),
			log:     slog.Default().With("system", "serve"),
		}
		return app.serve(ctx, listener)
	},
}

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/key/{key}", app.getKeyHandler)
	mux.HandleFunc("PUT /v1/key/{key}", app.putKeyHandler)
	mux.HandleFunc("DELETE /v1/key/{key}", app.deleteKeyHandler)
	mux.HandleFunc("GET /v1/tree", app.getTreeHandler)
	mux.HandleFunc("POST /v1/tree", app.buildTreeHandler)
	mux.HandleFunc("GET /v1/traverse/{order}", app.traverseHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// serve handles requests on listener until ctx is cancelled or the journal
// fails. In-flight requests are drained before it returns, so the journal can
// be closed afterwards.
func (app *application) serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		app.log.Info("starting server", "addr", listener.Addr().String())
		errc <- srv.Serve(listener)
	}()

	var journalErr error
	select {
	case err := <-errc:
		return err
	case journalErr = <-app.tlogger.Err():
		app.log.Error("transaction log failed", "err", journalErr)
	case <-ctx.Done():
	}

	app.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(journalErr, err)
	}
	return journalErr
}

func keyFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("key"))
}

func (app *application) getKeyHandler(w http.ResponseWriter, r *http.Request) {
	key, err := keyFromPath(r)
	if err != nil {
		http.Error(w, "key must be an integer", http.StatusBadRequest)
		return
	}
	if !app.store.Contains(key) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write([]byte(strconv.Itoa(key)))
}

func (app *application) putKeyHandler(w http.ResponseWriter, r *http.Request) {
	key, err := keyFromPath(r)
	if err != nil {
		http.Error(w, "key must be an integer", http.StatusBadRequest)
		return
	}

	err = app.store.Insert(key)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			treeOps.WithLabelValues("insert", "duplicate").Inc()
			http.Error(w, err.Error(), http.StatusConflict)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	treeOps.WithLabelValues("insert", "ok").Inc()
	treeSize.Set(float64(app.store.Len()))
	w.WriteHeader(http.StatusCreated)
}

func (app *application) deleteKeyHandler(w http.ResponseWriter, r *http.Request) {
	key, err := keyFromPath(r)
	if err != nil {
		http.Error(w, "key must be an integer", http.StatusBadRequest)
		return
	}

	err = app.store.Delete(key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			treeOps.WithLabelValues("delete", "not_found").Inc()
			w.WriteHeader(http.StatusNotFound)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	treeOps.WithLabelValues("delete", "ok").Inc()
	treeSize.Set(float64(app.store.Len()))
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) getTreeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, app.store.Render())
}

func (app *application) buildTreeHandler(w http.ResponseWriter, r *http.Request) {
	var keys []int
	body := http.MaxBytesReader(w, r.Body, maxBuildBody)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&keys); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "body must be a JSON array of integers", http.StatusBadRequest)
		return
	}

	if err := app.store.Build(keys); err != nil {
		treeOps.WithLabelValues("build", "unsorted").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	treeOps.WithLabelValues("build", "ok").Inc()
	treeSize.Set(float64(len(keys)))
	app.log.Debug("rebuilt tree", "size", len(keys))
	w.WriteHeader(http.StatusCreated)
}

func (app *application) traverseHandler(w http.ResponseWriter, r *http.Request) {
	order, err := bst.ParseOrder(r.PathValue("order"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	keys := app.store.Traverse(order)
	if keys == nil {
		keys = []int{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(keys); err != nil {
		app.log.Warn("failed to write traversal", "err", err)
	}
}

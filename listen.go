package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/oahshtsua/lab/bstlab/internal/shell"
	"github.com/oahshtsua/lab/bstlab/internal/store"
)

var cmdListen = &cli.Command{
	Name:  "listen",
	Usage: "run the tree menu for every TCP client, all sharing one tree",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "network port to listen on",
			Value:   20081,
			EnvVars: []string{"BSTLAB_MENU_PORT"},
		},
	},
	Action: func(cctx *cli.Context) error {
		ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		journal, err := openJournal(cctx)
		if err != nil {
			return err
		}
		defer journal.Close()

		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cctx.Int("port")))
		if err != nil {
			return fmt.Errorf("unable to bind port: %w", err)
		}
		slog.Info("starting menu server", "port", cctx.Int("port"))
		return serveMenus(ctx, listener, store.NewMemoryStore(store.WithJournal(journal)))
	},
}

// serveMenus accepts connections until ctx is cancelled and runs a menu on
// each of them against tree. It returns once every session has ended.
func serveMenus(ctx context.Context, listener net.Listener, tree store.TreeStore) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Warn("unable to accept connection", "err", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()

			log := slog.Default().With("remote", conn.RemoteAddr().String())
			log.Info("connection received")

			// unblock the menu's read when the server stops
			stop := context.AfterFunc(ctx, func() { conn.Close() })
			defer stop()

			menu := shell.NewMenu(conn, conn,
				shell.WithTree(tree),
				shell.WithLogger(log),
			)
			if err := menu.Run(ctx); err != nil && ctx.Err() == nil {
				log.Warn("menu session ended", "err", err)
			}
			log.Info("connection closed")
		}()
	}
}

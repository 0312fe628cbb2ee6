// Package main is the entry point for the Social4Sports client daemon. It
// keeps the realtime chat state synchronized with the backend and exposes a
// local ops endpoint for health and metrics.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/social4sports/sportlink/internal/api"
	"github.com/social4sports/sportlink/internal/config"
	"github.com/social4sports/sportlink/internal/dispatch"
	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/internal/session"
	"github.com/social4sports/sportlink/internal/social"
	"github.com/social4sports/sportlink/internal/store"
	"github.com/social4sports/sportlink/internal/transport"
	"github.com/social4sports/sportlink/internal/view"
	"github.com/social4sports/sportlink/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting sportlink client")

	ctx := context.Background()

	// Session: cached token first, env credentials as fallback
	sess := session.NewManager(cfg.StateDir, log)
	apiClient := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, sess, log)

	if err := sess.Restore(); err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Warn("failed to restore session", zap.Error(err))
		}
		if cfg.Email == "" || cfg.Password == "" {
			log.Error("no cached session and no credentials configured")
			os.Exit(1)
		}
		resp, err := apiClient.Login(ctx, model.Credentials{Email: cfg.Email, Password: cfg.Password})
		if err != nil {
			log.Error("login failed", zap.Error(err))
			os.Exit(1)
		}
		if err := sess.SetToken(resp.Token); err != nil {
			log.Error("login returned unusable token", zap.Error(err))
			os.Exit(1)
		}
	}
	log.Info("session established", zap.String("user_id", sess.UserID()))

	// Conversation store with persisted snapshot
	cache := store.NewFileCache(cfg.StateDir)
	chatStore := store.New(cache, log)
	notifications := store.NewNotifications()

	// Realtime transport funneling into the store
	adapter := transport.New(transport.Config{
		URL:               cfg.SocketURL,
		Namespace:         cfg.SocketNamespace,
		DialTimeout:       cfg.DialTimeout,
		ReconnectAttempts: cfg.ReconnectAttempts,
		ReconnectDelay:    cfg.ReconnectDelay,
	}, sess, transport.NewStoreSink(chatStore), log)

	// Coordination layers
	dispatcher := dispatch.New(apiClient, chatStore, adapter, cfg.TypingIdle, log)
	defer dispatcher.Close()
	controller := view.New(apiClient, chatStore, adapter, cfg.HistoryLimit, log)
	friends := social.NewFriends(apiClient, sess.UserID(), log)
	matches := social.NewMatches(apiClient, log)

	// Warm relationship, match, and notification state; REST failures are
	// non-fatal, the daemon keeps serving whatever it has.
	if err := friends.Refresh(ctx); err != nil {
		log.Warn("failed to refresh relationship lists", zap.Error(err))
	}
	if upcoming, err := matches.Upcoming(ctx); err != nil {
		log.Warn("failed to fetch upcoming matches", zap.Error(err))
	} else {
		log.Info("upcoming matches", zap.Int("count", len(upcoming)))
	}
	if items, err := apiClient.Notifications(ctx); err != nil {
		log.Warn("failed to fetch notifications", zap.Error(err))
	} else {
		notifications.Set(items)
	}

	// Live connection; REST-path functionality survives without it.
	if err := adapter.Connect(ctx); err != nil {
		log.Warn("realtime transport unavailable, continuing REST-only", zap.Error(err))
	}

	// Re-enter the conversation that was active before the last shutdown so
	// its history is fresh and read receipts catch up.
	if activePeer := chatStore.ActivePeer(); activePeer != "" {
		if err := controller.SelectPeer(ctx, activePeer); err != nil {
			log.Warn("failed to resume active conversation",
				zap.String("peer_id", activePeer), zap.Error(err))
		}
	}
	log.Info("conversation summaries ready",
		zap.Int("peers", len(controller.Summaries(friends.FriendsList()))))

	// Ops endpoint
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"socket":%q,"user":%q,"unread_peers":%d}`,
			adapter.State(), sess.UserID(), len(chatStore.Peers()))
	})
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         cfg.OpsAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("ops endpoint listening", zap.String("addr", cfg.OpsAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("ops endpoint error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Interactive command loop on stdin
	go commandLoop(ctx, log, chatStore, dispatcher, controller, friends)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	adapter.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("ops endpoint forced to shutdown", zap.Error(err))
	}

	log.Info("stopped")
}

// commandLoop reads simple commands from stdin: open <peer>, send <peer>
// <text>, typing <peer>, peers, friends, status <peer>.
func commandLoop(
	ctx context.Context,
	log *logger.Logger,
	chatStore *store.Store,
	dispatcher *dispatch.Dispatcher,
	controller *view.Controller,
	friends *social.Friends,
) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "open":
			if len(fields) < 2 {
				fmt.Println("usage: open <peer>")
				continue
			}
			if err := controller.SelectPeer(ctx, fields[1]); err != nil {
				log.Warn("open failed", zap.Error(err))
				continue
			}
			for _, msg := range chatStore.Messages(fields[1]) {
				fmt.Printf("%s %s: %s\n", msg.CreatedAt.Format(time.RFC3339), msg.Sender, msg.Content)
			}

		case "send":
			if len(fields) < 3 {
				fmt.Println("usage: send <peer> <text>")
				continue
			}
			dispatcher.SetTypingIntent(fields[1], false)
			if err := dispatcher.Send(ctx, fields[1], strings.Join(fields[2:], " ")); err != nil {
				log.Warn("send failed", zap.Error(err))
			}

		case "typing":
			if len(fields) < 2 {
				fmt.Println("usage: typing <peer>")
				continue
			}
			dispatcher.SetTypingIntent(fields[1], true)

		case "peers":
			for _, s := range controller.Summaries(friends.FriendsList()) {
				marker := " "
				if s.Online {
					marker = "*"
				}
				fmt.Printf("%s %s (%d unread) %s\n", marker, s.Name, s.Unread, s.Preview)
			}

		case "friends":
			if err := friends.Refresh(ctx); err != nil {
				log.Warn("refresh failed", zap.Error(err))
			}
			for _, f := range friends.FriendsList() {
				fmt.Printf("%s (%s) since %s\n", f.FullName, f.ID, f.Since.Format("2006-01-02"))
			}

		case "status":
			if len(fields) < 2 {
				fmt.Println("usage: status <peer>")
				continue
			}
			fmt.Println(friends.Status(fields[1]))

		default:
			fmt.Println("commands: open, send, typing, peers, friends, status")
		}
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/notatez/notatez/internal/account"
	"github.com/notatez/notatez/internal/config"
	"github.com/notatez/notatez/internal/note"
	"github.com/notatez/notatez/internal/query"
	"github.com/notatez/notatez/internal/ratelimit"
	"github.com/notatez/notatez/internal/sessions"
	"github.com/notatez/notatez/pkg/logger"
	"github.com/notatez/notatez/pkg/metrics"
)

const usage = `usage: notatez <command> [args]

commands:
  register <email> <password>
  login    <email> <password>
  create   <email> <password> <title> <content>
  list     [page] [sortBy] [order] [search]
  show     <id|slug>
`

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Debugf("startup: LOG_LEVEL=%s data_dir=%s redis=%v", logger.LevelString(), cfg.Data.Dir, cfg.Redis.Addr != "")

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		go func() {
			logger.Infof("serving metrics on %s", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Errorf("metrics server failed: %v", err)
			}
		}()
	}

	ctx := context.Background()

	// Prefer Redis-backed sessions when configured; fall back to memory.
	var sessionStore sessions.Store = sessions.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("cannot connect to Redis (%s): %v, using memory sessions", cfg.Redis.Addr, err)
		} else {
			sessionStore = sessions.NewRedisStore(client, "session:")
			logger.Infof("using Redis for session storage: %s", cfg.Redis.Addr)
		}
	}
	sessionSvc := sessions.NewService(sessionStore)

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		logger.Fatalf("cannot create data directory %s: %v", cfg.Data.Dir, err)
	}

	accounts := account.NewRepository(account.NewStore(cfg.Data.Dir))
	limiter := ratelimit.New("login", cfg.Auth.LoginRate, cfg.Auth.LoginBurst)
	accountSvc := account.NewService(accounts, sessionSvc, limiter, cfg.JWT.SessionTTL)

	notes := note.NewRepository(note.NewStore(cfg.Data.Dir))
	noteSvc := note.NewService(notes, accountSvc)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "register":
		requireArgs(4)
		a, err := accountSvc.Register(ctx, os.Args[2], os.Args[3])
		if err != nil {
			logger.Fatalf("register failed: %v", err)
		}
		fmt.Printf("registered account %d (%s)\n", a.AccountID, a.Name)

	case "login":
		requireArgs(4)
		id, sess, err := accountSvc.Authenticate(ctx, os.Args[2], os.Args[3])
		if err != nil {
			logger.Fatalf("login failed: %v", err)
		}
		if id == 0 {
			fmt.Println("invalid email or password")
			os.Exit(1)
		}
		fmt.Printf("logged in as account %d, session %s\n", id, sess.ID)
		if cfg.JWT.Secret != "" {
			token, err := sessions.AccessToken(cfg.JWT.Secret, sess, cfg.JWT.AccessTokenTTL)
			if err != nil {
				logger.Fatalf("cannot issue access token: %v", err)
			}
			fmt.Printf("access token: %s\n", token)
		}

	case "create":
		requireArgs(6)
		_, sess, err := accountSvc.Authenticate(ctx, os.Args[2], os.Args[3])
		if err != nil {
			logger.Fatalf("login failed: %v", err)
		}
		if sess == nil {
			fmt.Println("invalid email or password")
			os.Exit(1)
		}
		n, err := noteSvc.Create(ctx, sess, os.Args[4], os.Args[5])
		if err != nil {
			logger.Fatalf("create failed: %v", err)
		}
		fmt.Printf("created note %d (%s)\n", n.ID, n.Slug)

	case "list":
		req := note.ListRequest{Page: 1}
		if len(os.Args) > 2 {
			if p, err := strconv.Atoi(os.Args[2]); err == nil {
				req.Page = p
			}
		}
		if len(os.Args) > 3 {
			req.SortBy = os.Args[3]
		}
		if len(os.Args) > 4 {
			req.Descending = os.Args[4] == "desc"
		}
		if len(os.Args) > 5 {
			req.SearchQuery = os.Args[5]
		}
		page, err := noteSvc.List(ctx, req)
		if err != nil {
			logger.Fatalf("list failed: %v", err)
		}
		printPage(page)

	case "show":
		requireArgs(3)
		var n note.Note
		if id, convErr := strconv.Atoi(os.Args[2]); convErr == nil {
			n, err = noteSvc.Get(ctx, id)
		} else {
			n, err = noteSvc.GetBySlug(ctx, os.Args[2])
		}
		if err != nil {
			logger.Fatalf("show failed: %v", err)
		}
		fmt.Printf("#%d %s (%s) by %s\n%s\n", n.ID, n.Title, n.Slug, n.Author.Name, n.Content)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func requireArgs(n int) {
	if len(os.Args) < n {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func printPage(page query.Page[note.Note]) {
	fmt.Printf("page %d/%d (%d notes)\n", page.CurrentPage, page.TotalPages(), page.TotalItems)
	for _, n := range page.Items {
		fmt.Printf("  #%d %s by %s: %s\n", n.ID, n.Title, n.Author.Name, query.ShortText(n.Content, 60, false))
	}
}

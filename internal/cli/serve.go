package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/avagen/avagen/internal/server"
	"github.com/avagen/avagen/pkg/cache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string        // listen address
	backend   string        // cache backend: none, file or redis
	redisAddr string        // redis address for the redis backend
	redisDB   int           // redis database number
	ttl       time.Duration // cached avatar lifetime
	scope     string        // cache key prefix for shared backends
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		backend:   "file",
		redisAddr: "localhost:6379",
		ttl:       cache.TTLAvatar,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the avatar HTTP service",
		Long: `Run the avatar HTTP service.

Avatars are rendered on demand at GET /v1/avatar/{variant} and seeded
requests are cached in the configured backend.

Examples:
  avagen serve
  avagen serve --addr :9090 --cache none
  avagen serve --cache redis --redis-addr redis:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", opts.addr, "listen address")
	f.StringVar(&opts.backend, "cache", opts.backend, "cache backend (none, file, redis)")
	f.StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address (password via AVAGEN_REDIS_PASSWORD)")
	f.IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	f.DurationVar(&opts.ttl, "ttl", opts.ttl, "cached avatar lifetime")
	f.StringVar(&opts.scope, "scope", "", "cache key prefix for shared backends")

	return cmd
}

// runServe builds the cache backend and runs the service until the
// command's context is canceled.
func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	applyServeConfig(cmd, opts, configFromContext(cmd.Context()))

	backend, err := c.newServeCache(cmd, opts.backend, opts.redisAddr, opts.redisDB)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.scope != "" {
		keyer = cache.NewScopedKeyer(nil, opts.scope)
	}

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Cache:  backend,
		Keyer:  keyer,
		Logger: c.Logger,
		TTL:    opts.ttl,
	})
	defer srv.Close()

	c.Logger.Info("cache backend ready", "backend", opts.backend)
	return srv.ListenAndServe(cmd.Context())
}

// applyServeConfig fills unset flags from the config file.
func applyServeConfig(cmd *cobra.Command, opts *serveOpts, cfg *fileConfig) {
	flags := cmd.Flags()
	stringDefault(&opts.addr, flags.Changed("addr"), cfg.Serve.Addr)
	stringDefault(&opts.backend, flags.Changed("cache"), cfg.Serve.Cache)
	stringDefault(&opts.redisAddr, flags.Changed("redis-addr"), cfg.Serve.RedisAddr)
	intDefault(&opts.redisDB, flags.Changed("redis-db"), cfg.Serve.RedisDB)
}

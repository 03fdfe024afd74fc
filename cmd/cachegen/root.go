package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/cachegen"
	"github.com/unkn0wn-root/cachegen/invoke"
)

type app struct {
	v       *viper.Viper
	open    openFunc
	cfgFile string
	cfg     config
	log     *zap.Logger
}

func newRootCmd(open openFunc) *cobra.Command {
	a := &app{v: newViper(), open: open, log: zap.NewNop()}

	root := &cobra.Command{
		Use:          "cachegen",
		Short:        "Get-or-generate values in a shared cache",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := readConfig(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			l, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	pf.String("redis-addr", "", "redis address (host:port)")
	pf.String("namespace", "", "key namespace")
	pf.String("log-level", "", "debug, info, warn or error")
	_ = a.v.BindPFlag("redis.addr", pf.Lookup("redis-addr"))
	_ = a.v.BindPFlag("namespace", pf.Lookup("namespace"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))

	root.AddCommand(a.getCmd(), a.delCmd())
	return root
}

func (a *app) getCmd() *cobra.Command {
	var dflt string
	cmd := &cobra.Command{
		Use:   "get KEY [-- CMD ARGS...]",
		Short: "Print the cached value, generating it on a miss",
		Long: `Print the value cached under KEY. On a miss the command after "--" is run
and its stdout is cached and printed. CACHEGEN_KEY and CACHEGEN_TTL are set in
its environment. Without a command, --default is cached instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			fb, err := fallbackFor(cmd, args, dflt)
			if err != nil {
				return err
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if !cmd.Flags().Changed("ttl") {
				ttl = a.cfg.TTL
			}

			ctx := cmd.Context()
			s, err := a.open(ctx, a.cfg, storeLogger(a.log))
			if err != nil {
				return err
			}
			defer closeStore(ctx, s, a.log)

			acc, err := cachegen.New(cachegen.Options[string]{Store: s})
			if err != nil {
				return err
			}
			v, err := acc.GetOrGenerate(ctx, key, fb, ttl)
			if err != nil {
				a.log.Debug("get failed", zap.String("key", key), zap.Error(err))
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), v)
			return err
		},
	}
	cmd.Flags().Duration("ttl", 0, "entry ttl (default from config; negative = no expiry)")
	cmd.Flags().StringVar(&dflt, "default", "", "value cached on a miss when no command is given")
	return cmd
}

func (a *app) delCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Delete a cached value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.open(ctx, a.cfg, storeLogger(a.log))
			if err != nil {
				return err
			}
			defer closeStore(ctx, s, a.log)
			return s.Delete(ctx, args[0])
		},
	}
}

// fallbackFor picks the generator for get: the command after "--", or the
// --default literal.
func fallbackFor(cmd *cobra.Command, args []string, dflt string) (cachegen.Fallback[string], error) {
	dash := cmd.ArgsLenAtDash()
	switch {
	case dash == 1 && len(args) > 1 && cmd.Flags().Changed("default"):
		return cachegen.Fallback[string]{}, fmt.Errorf("--default and a command are mutually exclusive")
	case dash == 1 && len(args) > 1:
		return cachegen.Func[string](commandGenerator(args[1], args[2:], cmd.ErrOrStderr())), nil
	case dash < 0 && len(args) == 1 && cmd.Flags().Changed("default"):
		return cachegen.Value(dflt), nil
	case dash < 0 && len(args) == 1:
		return cachegen.Fallback[string]{}, fmt.Errorf("nothing to generate: pass --default or a command after --")
	default:
		return cachegen.Fallback[string]{}, fmt.Errorf("usage: get KEY [-- CMD ARGS...]")
	}
}

// commandGenerator runs name with argv and returns its stdout. The resolved
// key and ttl are exported to the command's environment.
func commandGenerator(name string, argv []string, stderr io.Writer) invoke.Func[string] {
	return func(ctx context.Context, in ...any) (string, error) {
		c := exec.CommandContext(ctx, name, argv...)
		c.Env = os.Environ()
		if len(in) > 0 {
			c.Env = append(c.Env, fmt.Sprintf("CACHEGEN_KEY=%v", in[0]))
		}
		if len(in) > 1 {
			if ttl, ok := in[1].(time.Duration); ok {
				c.Env = append(c.Env, "CACHEGEN_TTL="+ttl.String())
			}
		}
		c.Stderr = stderr
		out, err := c.Output()
		if err != nil {
			return "", fmt.Errorf("run %s: %w", name, err)
		}
		return string(out), nil
	}
}

func closeStore(ctx context.Context, s valueStore, l *zap.Logger) {
	if err := s.Close(ctx); err != nil {
		l.Warn("close store", zap.Error(err))
	}
}

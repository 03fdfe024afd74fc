package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/cachegen"
	"github.com/unkn0wn-root/cachegen/codec"
	zaplog "github.com/unkn0wn-root/cachegen/log/zap"
	redisprov "github.com/unkn0wn-root/cachegen/provider/redis"
)

type config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Namespace     string
	TTL           time.Duration
	LogLevel      string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("namespace", "cli")
	v.SetDefault("ttl", 10*time.Minute)
	v.SetDefault("log.level", "warn")

	v.SetEnvPrefix("CACHEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// readConfig merges the config file, when one is named, under env and flags.
func readConfig(v *viper.Viper, file string) (config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	cfg := config{
		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		RedisDB:       v.GetInt("redis.db"),
		Namespace:     v.GetString("namespace"),
		TTL:           v.GetDuration("ttl"),
		LogLevel:      v.GetString("log.level"),
	}
	if cfg.Namespace == "" {
		return config{}, fmt.Errorf("namespace must not be empty")
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

// valueStore is the store surface the commands need.
type valueStore interface {
	cachegen.Store[string]
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

type openFunc func(ctx context.Context, cfg config, log cachegen.Logger) (valueStore, error)

func openRedis(ctx context.Context, cfg config, log cachegen.Logger) (valueStore, error) {
	p, err := redisprov.Dial(ctx, &goredis.UniversalOptions{
		Addrs:    []string{cfg.RedisAddr},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	s, err := cachegen.NewStore(cachegen.StoreOptions[string]{
		Namespace:  cfg.Namespace,
		Provider:   p,
		Codec:      codec.String{},
		Logger:     log,
		DefaultTTL: cfg.TTL,
	})
	if err != nil {
		_ = p.Close(ctx)
		return nil, err
	}
	return s, nil
}

func storeLogger(l *zap.Logger) cachegen.Logger { return zaplog.New(l) }

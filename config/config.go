package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid 配置值非法
var ErrInvalid = errors.New("invalid config")

// Config 进程级配置
type Config struct {
	Addr        string
	TickHz      int
	LogFile     string
	LogLevel    string
	MapPath     string // Tiled JSON 地图；为空时使用内置地图
	SpawnsPath  string // 出生点表；为空时使用内置表
	Seed        int64  // 0 表示按时间随机
	DefaultRoom string
	MaxRooms    int           // 同时存在的房间上限
	RoomIdle    time.Duration // 空房间保留时长，0 表示不回收
}

// Default 返回默认配置
func Default() Config {
	return Config{
		Addr:        ":8081",
		TickHz:      60,
		LogFile:     "app.log",
		LogLevel:    "info",
		DefaultRoom: "room-1",
		MaxRooms:    16,
		RoomIdle:    2 * time.Minute,
	}
}

// Load 按优先级合并：默认值 < .env < 环境变量 < 命令行参数
func Load(fset *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address, e.g. :8081")
	fset.IntVar(&cfg.TickHz, "tick-hz", cfg.TickHz, "simulation ticks per second")
	fset.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "rolling log file path (empty = console only)")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fset.StringVar(&cfg.MapPath, "map", cfg.MapPath, "Tiled JSON map with a Blocked layer")
	fset.StringVar(&cfg.SpawnsPath, "spawns", cfg.SpawnsPath, "spawn point table JSON")
	fset.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	fset.StringVar(&cfg.DefaultRoom, "room", cfg.DefaultRoom, "room created at startup")
	fset.IntVar(&cfg.MaxRooms, "max-rooms", cfg.MaxRooms, "maximum number of concurrent rooms")
	fset.DurationVar(&cfg.RoomIdle, "room-idle", cfg.RoomIdle, "stop rooms left empty this long (0 = never)")
	if err := fset.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("ARENA_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("ARENA_TICK_HZ"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: ARENA_TICK_HZ=%q", ErrInvalid, v)
		}
		c.TickHz = n
	}
	if v, ok := os.LookupEnv("ARENA_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv("ARENA_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("ARENA_MAP"); ok {
		c.MapPath = v
	}
	if v, ok := os.LookupEnv("ARENA_SPAWNS"); ok {
		c.SpawnsPath = v
	}
	if v, ok := os.LookupEnv("ARENA_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: ARENA_SEED=%q", ErrInvalid, v)
		}
		c.Seed = n
	}
	if v, ok := os.LookupEnv("ARENA_MAX_ROOMS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: ARENA_MAX_ROOMS=%q", ErrInvalid, v)
		}
		c.MaxRooms = n
	}
	if v, ok := os.LookupEnv("ARENA_ROOM_IDLE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: ARENA_ROOM_IDLE=%q", ErrInvalid, v)
		}
		c.RoomIdle = d
	}
	if v, ok := os.LookupEnv("ARENA_ROOM"); ok {
		c.DefaultRoom = v
	}
	return nil
}

// Validate 校验配置
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	}
	if c.TickHz <= 0 || c.TickHz > 240 {
		return fmt.Errorf("%w: tick rate %d out of range (1..240)", ErrInvalid, c.TickHz)
	}
	if c.DefaultRoom == "" {
		return fmt.Errorf("%w: empty default room", ErrInvalid)
	}
	if c.MaxRooms < 1 {
		return fmt.Errorf("%w: max rooms %d must be at least 1", ErrInvalid, c.MaxRooms)
	}
	if c.RoomIdle < 0 {
		return fmt.Errorf("%w: negative room idle timeout", ErrInvalid)
	}
	return nil
}

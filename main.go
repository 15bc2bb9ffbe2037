package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arenacore/assets"
	"arenacore/config"
	"arenacore/game"
	"arenacore/logger"
	"arenacore/server"
)

// arenacore 入口：加载配置与地图，启动 HTTP + WebSocket 服务
func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	// 使用第三方 zap 日志库写入滚动日志文件，同时输出到控制台
	if err := logger.Init(logger.Options{FilePath: cfg.LogFile, Level: cfg.LogLevel, Console: true}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Log

	grid, err := assets.LoadGrid(cfg.MapPath)
	if err != nil {
		log.Fatalf("load map: %v", err)
	}
	spawns, err := assets.LoadSpawns(cfg.SpawnsPath)
	if err != nil {
		log.Fatalf("load spawns: %v", err)
	}
	if err := spawns.Validate(grid); err != nil {
		log.Fatalf("spawns: %v", err)
	}

	rm := server.NewRoomManager(server.RoomOptions{
		Grid:        grid,
		Spawns:      spawns,
		Tuning:      game.DefaultTuning(),
		TickHz:      cfg.TickHz,
		Seed:        cfg.Seed,
		DefaultRoom: cfg.DefaultRoom,
		MaxRooms:    cfg.MaxRooms,
		IdleTimeout: cfg.RoomIdle,
	})
	// 先预创建一个默认房间，便于快速试跑
	if _, err := rm.GetOrCreateRoom(cfg.DefaultRoom); err != nil {
		log.Fatalf("create room: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", rm.HandleWS)
	// 管理与监控接口
	mux.HandleFunc("/admin/config", rm.HandleAdminConfig)
	mux.HandleFunc("/metrics", rm.HandleMetrics)
	mux.HandleFunc("/rooms", rm.HandleRooms)
	mux.HandleFunc("/protocol/schema", server.HandleSchema)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Infow("arena listening",
			"addr", cfg.Addr, "tickHz", cfg.TickHz, "seed", cfg.Seed,
			"map", fmt.Sprintf("%dx%d", grid.Cols, grid.Rows))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	rm.StopAll()
}

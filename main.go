package main

import (
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rtspd/config"
	"rtspd/server"

	_ "net/http/pprof"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	setupLogger()

	monitor := server.NewMonitor()

	api := server.NewAPIServer(monitor)
	api.SetupRoutes()
	go api.Run(config.GlobalConfig.APIPort)

	srv := server.New(config.GlobalConfig.Port, config.GlobalConfig.BufferSize, monitor)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.WithError(err).Fatal("rtsp server exited")
	}
}

func setupLogger() {
	level, err := log.ParseLevel(config.GlobalConfig.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetReportCaller(true)

	filePath := "logs/rtspd.log"
	writer, err := rotatelogs.New(
		filePath+".%Y%m%d",
		rotatelogs.WithLinkName(filePath),
		rotatelogs.WithMaxAge(time.Duration(14*24)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(24)*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to create rotatelogs: %v", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, writer))

	log.SetFormatter(&log.TextFormatter{
		ForceColors:      false,
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		DisableTimestamp: false,
	})
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/grpc-boot/mesh"
	"github.com/grpc-boot/mesh/admin"
	"github.com/grpc-boot/mesh/consumer"
	"github.com/grpc-boot/mesh/grace"
	"github.com/grpc-boot/mesh/logger"
	"github.com/grpc-boot/mesh/monitor"
	rocket_mq "github.com/grpc-boot/mesh/rocket-mq"
)

var confPath string

func init() {
	flag.StringVar(&confPath, "conf", "", "yaml or json config file, EVENTMESH_* env vars override it")
}

func main() {
	flag.Parse()

	conf, err := mesh.LoadConfiguration(confPath)
	if err != nil {
		panic(err.Error())
	}

	if err = conf.Validate(); err != nil {
		panic(err.Error())
	}

	log, cleanup, err := logger.New(conf.Production)
	if err != nil {
		panic(err.Error())
	}
	defer func() { _ = cleanup() }()

	rocket_mq.SetLogger(log)
	if conf.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	c := consumer.NewRocketMQConsumer(consumer.WithLogger(log))
	if err = c.Init(conf.Broadcast, conf, conf.ConsumerGroup); err != nil {
		log.Fatal("init consumer failed", zap.Error(err))
	}

	if conf.Name != "" {
		_ = c.SetInstanceName(conf.Name)
	}

	c.RegisterMessageListener(mesh.MessageListenerFunc(func(msg *mesh.Message, ctx mesh.Context) {
		log.Info("message received",
			zap.String("topic", msg.Destination()),
			zap.String("msgId", msg.ID()),
			zap.Int("size", len(msg.Body())),
		)
		ctx.Ack()
	}))

	for _, topic := range conf.Topics {
		if err = c.Subscribe(topic); err != nil {
			log.Fatal("subscribe failed", zap.String("topic", topic), zap.Error(err))
		}
	}

	if err = c.Start(); err != nil {
		log.Fatal("start consumer failed", zap.Error(err))
	}

	server := &http.Server{
		Addr:    conf.AdminAddr,
		Handler: admin.NewRouter(admin.NewHandler(c, monitor.Default.Handler(), log)),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("admin server stopped", zap.Error(err))
		}
	}()
	log.Info("mesh consumer running", zap.String("admin", conf.AdminAddr), zap.Strings("topics", conf.Topics))

	err = grace.NewHold(func(ctx context.Context) (err error) {
		err = errors.Join(server.Shutdown(ctx), c.Shutdown())
		return
	}, log).
		On(syscall.SIGUSR1, c.Pause).
		On(syscall.SIGUSR2, c.Resume).
		Start()

	if err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

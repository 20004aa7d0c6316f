package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Run serves the router until SIGINT/SIGTERM, then drains in-flight requests.
// In-flight external side effects are not rolled back on shutdown; the
// calendar authority and payment gateway remain the durable sources of truth.
func Run(router *gin.Engine, port string, log *logrus.Logger) {
	addr := ":8080"
	if port != "" {
		addr = ":" + port
	}

	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()
	log.WithField("addr", addr).Info("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

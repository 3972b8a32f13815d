package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server — HTTP-сервер Mini App API с graceful shutdown.
type Server struct {
	srv *http.Server
}

func NewServer(addr string, router *gin.Engine) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run запускает сервер. Блокирует до ошибки или Shutdown.
func (s *Server) Run() error {
	log.WithField("addr", s.srv.Addr).Info("HTTP-сервер Mini App запущен")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь текущих запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

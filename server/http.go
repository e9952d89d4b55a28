package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	Success int = 0
	Failed  int = -1
)

type Ret struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// APIServer exposes process state over HTTP, read-only. The RTSP side is
// untouched by anything served here.
type APIServer struct {
	router  *gin.Engine
	monitor *Monitor
}

func NewAPIServer(monitor *Monitor) *APIServer {
	return &APIServer{
		router:  gin.Default(),
		monitor: monitor,
	}
}

// SetupRoutes configures the HTTP routes for the server.
func (s *APIServer) SetupRoutes() {
	s.router.GET("/", s.handleRoot)
	s.router.GET("/stats", s.handleStats)
	s.router.GET("/events", s.handleEvents)

	s.router.GET("/ws", s.handleWebSocket)
}

// Run starts the server on the specified port.
func (s *APIServer) Run(port int) {
	addr := fmt.Sprintf(":%d", port)
	if err := s.router.Run(addr); err != nil {
		log.WithError(err).Fatal("Error starting api server")
	}
}

func (s *APIServer) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, Ret{
		Code:    Success,
		Message: "rtspd control api",
	})
}

func (s *APIServer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, Ret{
		Code:    Success,
		Message: "success",
		Data:    s.monitor.Stats(),
	})
}

func (s *APIServer) handleEvents(c *gin.Context) {
	c.JSON(http.StatusOK, Ret{
		Code:    Success,
		Message: "success",
		Data:    s.monitor.Events(),
	})
}

package network

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"coinrush/protocol"
	"coinrush/room"
)

// NewRouter wires the websocket endpoint, the room API and, when staticDir
// exists, the browser client. codec is the wire format for clients that do
// not negotiate a subprotocol; nil means JSON.
func NewRouter(rooms *room.Manager, staticDir string, codec protocol.Codec, logger *log.Logger) *gin.Engine {
	if logger == nil {
		logger = log.Default()
	}
	r := gin.New()
	r.Use(gin.Recovery(), secureHeaders())

	ws := NewHandler(rooms, codec, logger)
	r.GET("/ws", gin.WrapH(ws))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, rooms.ListRooms())
	})
	api.POST("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"code": rooms.CreateRoom()})
	})
	api.GET("/rooms/:code/standings", func(c *gin.Context) {
		target := rooms.Get(c.Param("code"))
		if target == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		reply := make(chan []protocol.Standing, 1)
		if !query(c, target, room.Standings{Reply: reply}) {
			return
		}
		select {
		case st := <-reply:
			c.JSON(http.StatusOK, st)
		case <-target.Done():
			c.JSON(http.StatusNotFound, gin.H{"error": "room closed"})
		case <-c.Request.Context().Done():
		}
	})
	api.GET("/rooms/:code/state", func(c *gin.Context) {
		target := rooms.Get(c.Param("code"))
		if target == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		reply := make(chan protocol.State, 1)
		if !query(c, target, room.Snapshot{Reply: reply}) {
			return
		}
		select {
		case st := <-reply:
			c.JSON(http.StatusOK, st)
		case <-target.Done():
			c.JSON(http.StatusNotFound, gin.H{"error": "room closed"})
		case <-c.Request.Context().Done():
		}
	})

	if fi, err := os.Stat(staticDir); err == nil && fi.IsDir() {
		logger.Printf("Serving static files from: %s", staticDir)
		r.Static("/public", staticDir)
		r.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(staticDir, "index.html"))
		})
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	})
	return r
}

func query(c *gin.Context, target *room.Room, cmd any) bool {
	if target.Submit(cmd) {
		return true
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "room closed"})
	return false
}

// Package status exposes the state of the running patrols, both over HTTP and in the server list.
package status

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/route"
)

// NewRouter returns a router serving patrol snapshots. Every request must carry key in its
// authorization header.
func NewRouter(key string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		if c.GetHeader("authorization") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	})
	router.GET("/patrols", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"patrols": lo.Map(route.All(), func(p *route.Patroller, _ int) route.Snapshot {
				return p.Snapshot()
			}),
		})
	})
	router.GET("/patrols/:identifier", func(c *gin.Context) {
		p := route.FromIdentifier(c.Param("identifier"))
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"reason": "no patrol found"})
			return
		}
		c.JSON(http.StatusOK, p.Snapshot())
	})
	return router
}

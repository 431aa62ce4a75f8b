package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"dormitory-backend/config"
	"dormitory-backend/internal/mw"
	"dormitory-backend/internal/notification"
	"dormitory-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.ServerConfig, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	r.Use(rateLimiter)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	dorm := r.Group("/dorm")
	{
		dorm.POST("/createDormitory", handler.CreateDormitory)
		dorm.GET("/getDorm", handler.GetDorms)
		dorm.GET("/getDorm/:dormId", handler.GetDormByID)
		dorm.GET("/getAllRoom", handler.GetAllRooms)
		dorm.GET("/getAllRoom/:dormId", handler.GetRoomsByDormID)
		dorm.PUT("/updateDorm/:dormId", handler.UpdateDorm)
	}

	contract := r.Group("/contract")
	{
		contract.POST("/createContract", handler.CreateContract)
		contract.GET("/getContract", handler.GetContracts)
		contract.GET("/getContract/:contractId", handler.GetContractByID)
		contract.PUT("/moveOut/:contractId", handler.MoveOut)
	}

	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/occupancy", caching, handler.GetOccupancy)
		dashboard.GET("/revenue", caching, handler.GetRevenue)
	}

	api := r.Group("/api")
	{
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

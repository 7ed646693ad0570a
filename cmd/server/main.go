package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"lifehub/internal/api"     // Custom package for API handlers
	"lifehub/internal/config"  // Custom package for configuration
	"lifehub/internal/events"  // Custom package for event publishing
	"lifehub/internal/service" // Custom package for the service layer
	"lifehub/internal/utils"   // Custom package for caching helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	cache := utils.NewCache(redisClient)         // Read cache for hot portfolio lookups
	publisher := events.NewPublisher(redisClient) // Best-effort domain event publisher

	// Service layer, one service per vertical
	bucketList := service.NewBucketListService(db)
	goals := service.NewGoalService(db, publisher)
	portfolio := service.NewPortfolioService(db, publisher)
	security := service.NewSecurityService(db)
	leases := service.NewLeaseService(db)
	chores := service.NewChoreService(db)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	apiGroup := r.Group("/api")

	// Bucket list routes
	apiGroup.POST("/bucket-list", api.CreateBucketListItemHandler(bucketList))                  // Create item endpoint
	apiGroup.GET("/bucket-list", api.ListBucketListItemsHandler(bucketList))                    // List items endpoint
	apiGroup.GET("/bucket-list/:id", api.GetBucketListItemHandler(bucketList))                  // Get item endpoint
	apiGroup.PUT("/bucket-list/:id", api.UpdateBucketListItemHandler(bucketList))               // Update item endpoint
	apiGroup.PUT("/bucket-list/:id/progress", api.UpdateBucketListProgressHandler(bucketList))  // Update progress endpoint
	apiGroup.POST("/bucket-list/:id/favorite", api.ToggleBucketListFavoriteHandler(bucketList)) // Toggle favorite endpoint
	apiGroup.DELETE("/bucket-list/:id", api.DeleteBucketListItemHandler(bucketList))            // Delete item endpoint

	// Goal and contribution routes
	apiGroup.POST("/goals", api.CreateGoalHandler(goals))                        // Create goal endpoint
	apiGroup.GET("/goals", api.ListGoalsHandler(goals))                          // List goals endpoint
	apiGroup.GET("/goals/:id", api.GetGoalHandler(goals))                        // Get goal endpoint
	apiGroup.PUT("/goals/:id", api.UpdateGoalHandler(goals))                     // Update goal endpoint
	apiGroup.DELETE("/goals/:id", api.DeleteGoalHandler(goals))                  // Delete goal endpoint
	apiGroup.POST("/goals/:id/contributions", api.CreateContributionHandler(goals)) // Record contribution endpoint
	apiGroup.GET("/goals/:id/contributions", api.ListContributionsHandler(goals))  // List contributions endpoint
	apiGroup.DELETE("/contributions/:id", api.DeleteContributionHandler(goals))    // Remove contribution endpoint

	// Portfolio routes (reads go through the Redis cache)
	apiGroup.POST("/holdings", api.CreateHoldingHandler(portfolio, cache))            // Create holding endpoint
	apiGroup.GET("/holdings", api.ListHoldingsHandler(portfolio, cache))              // List holdings endpoint
	apiGroup.GET("/holdings/:id", api.GetHoldingHandler(portfolio, cache))            // Get holding endpoint
	apiGroup.PUT("/holdings/:id", api.UpdateHoldingHandler(portfolio, cache))         // Update holding endpoint
	apiGroup.PUT("/holdings/:id/price", api.UpdateHoldingPriceHandler(portfolio, cache)) // Update price endpoint
	apiGroup.DELETE("/holdings/:id", api.DeleteHoldingHandler(portfolio, cache))      // Delete holding endpoint
	apiGroup.POST("/holdings/:id/trades", api.CreateTradeHandler(portfolio, cache))   // Record trade endpoint
	apiGroup.GET("/holdings/:id/trades", api.ListTradesHandler(portfolio))            // List trades endpoint
	apiGroup.PUT("/trades/:id", api.UpdateTradeHandler(portfolio, cache))             // Update trade endpoint
	apiGroup.DELETE("/trades/:id", api.DeleteTradeHandler(portfolio, cache))          // Delete trade endpoint

	// Security audit routes
	apiGroup.POST("/accounts", api.CreateAccountHandler(security))                      // Create account endpoint
	apiGroup.GET("/accounts", api.ListAccountsHandler(security))                        // List accounts endpoint
	apiGroup.GET("/accounts/:id", api.GetAccountHandler(security))                      // Get account endpoint
	apiGroup.PUT("/accounts/:id", api.UpdateAccountHandler(security))                   // Update account endpoint
	apiGroup.DELETE("/accounts/:id", api.DeleteAccountHandler(security))                // Delete account endpoint
	apiGroup.POST("/accounts/:id/breach-alerts", api.CreateBreachAlertHandler(security)) // Open alert endpoint
	apiGroup.GET("/breach-alerts", api.ListBreachAlertsHandler(security))               // List alerts endpoint
	apiGroup.GET("/breach-alerts/:id", api.GetBreachAlertHandler(security))             // Get alert endpoint
	apiGroup.POST("/breach-alerts/:id/acknowledge", api.AcknowledgeBreachAlertHandler(security)) // Acknowledge endpoint
	apiGroup.POST("/breach-alerts/:id/resolve", api.ResolveBreachAlertHandler(security))         // Resolve endpoint
	apiGroup.POST("/breach-alerts/:id/dismiss", api.DismissBreachAlertHandler(security))         // Dismiss endpoint
	apiGroup.DELETE("/breach-alerts/:id", api.DeleteBreachAlertHandler(security))                // Delete alert endpoint

	// Property and lease routes
	apiGroup.POST("/properties", api.CreatePropertyHandler(leases))            // Create property endpoint
	apiGroup.GET("/properties", api.ListPropertiesHandler(leases))             // List properties endpoint
	apiGroup.GET("/properties/:id", api.GetPropertyHandler(leases))            // Get property endpoint
	apiGroup.PUT("/properties/:id", api.UpdatePropertyHandler(leases))         // Update property endpoint
	apiGroup.DELETE("/properties/:id", api.DeletePropertyHandler(leases))      // Delete property endpoint
	apiGroup.POST("/properties/:id/leases", api.CreateLeaseHandler(leases))    // Open lease endpoint
	apiGroup.GET("/properties/:id/leases", api.ListLeasesHandler(leases))      // List leases endpoint
	apiGroup.GET("/leases/:id", api.GetLeaseHandler(leases))                   // Get lease endpoint
	apiGroup.PUT("/leases/:id", api.UpdateLeaseHandler(leases))                // Update lease endpoint
	apiGroup.POST("/leases/:id/terminate", api.TerminateLeaseHandler(leases))  // Terminate lease endpoint
	apiGroup.DELETE("/leases/:id", api.DeleteLeaseHandler(leases))             // Delete lease endpoint

	// Family chore routes
	apiGroup.POST("/family-members", api.CreateFamilyMemberHandler(chores))       // Create member endpoint
	apiGroup.GET("/family-members", api.ListFamilyMembersHandler(chores))         // List members endpoint
	apiGroup.GET("/family-members/:id", api.GetFamilyMemberHandler(chores))       // Get member endpoint
	apiGroup.PUT("/family-members/:id", api.UpdateFamilyMemberHandler(chores))    // Update member endpoint
	apiGroup.DELETE("/family-members/:id", api.DeleteFamilyMemberHandler(chores)) // Delete member endpoint
	apiGroup.POST("/chores", api.CreateChoreHandler(chores))                      // Create chore endpoint
	apiGroup.GET("/chores", api.ListChoresHandler(chores))                        // List chores endpoint
	apiGroup.GET("/chores/:id", api.GetChoreHandler(chores))                      // Get chore endpoint
	apiGroup.PUT("/chores/:id", api.UpdateChoreHandler(chores))                   // Update chore endpoint
	apiGroup.DELETE("/chores/:id", api.DeleteChoreHandler(chores))                // Delete chore endpoint
	apiGroup.POST("/assignments", api.CreateAssignmentHandler(chores))            // Assign chore endpoint
	apiGroup.GET("/assignments", api.ListAssignmentsHandler(chores))              // List assignments endpoint
	apiGroup.POST("/assignments/:id/complete", api.CompleteAssignmentHandler(chores)) // Complete assignment endpoint
	apiGroup.DELETE("/assignments/:id", api.DeleteAssignmentHandler(chores))      // Delete assignment endpoint
	apiGroup.POST("/rewards", api.CreateRewardHandler(chores))                    // Create reward endpoint
	apiGroup.GET("/rewards", api.ListRewardsHandler(chores))                      // List rewards endpoint
	apiGroup.GET("/rewards/:id", api.GetRewardHandler(chores))                    // Get reward endpoint
	apiGroup.PUT("/rewards/:id", api.UpdateRewardHandler(chores))                 // Update reward endpoint
	apiGroup.POST("/rewards/:id/redeem", api.RedeemRewardHandler(chores))         // Redeem reward endpoint
	apiGroup.DELETE("/rewards/:id", api.DeleteRewardHandler(chores))              // Delete reward endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}

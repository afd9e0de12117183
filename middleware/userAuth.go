package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	userRepo "roomly/database/repository/user"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// JWTAuthUserMiddleware guards the profile-builder routes. A request is
// authenticated when the bearer token's hash matches either the Redis auth
// cache or the hash stored on the user document; either source is sufficient.
func JWTAuthUserMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Insufficient authorization",
				"redirect": "signin",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Insufficient authorization",
				"redirect": "signin",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.AuthCacheClient
		cacheEnabled := true
		if authCache == nil {
			log.Printf("WARNING: Auth cache client not available. Falling back to DB lookup.")
			cacheEnabled = false
		}

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
					c.Set("userID", userID)
					c.Next()
					return
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":    "Token mismatch",
					"redirect": "signin",
				})
				return
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
			}
		}

		// Cache miss: the persisted hash on the user document is the second
		// authentication source.
		proj := bson.M{"id": 1, "session_token_hash": 1}
		usr, err := repo.GetByIDWithProjection(userID, proj)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication error",
				"redirect": "signin",
			})
			return
		}
		if usr.SessionTokenHash == "" || usr.SessionTokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Token mismatch",
				"redirect": "signin",
			})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", userID)
		c.Next()
	}
}

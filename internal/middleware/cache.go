package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/material-rental/internal/metrics"
)

const cachePrefix = "material-rental:read"

// Cache keeps public GET responses in Redis. A nil *Cache passes every
// request through.
type Cache struct {
	rdb     *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewCache(rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) *Cache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl, metrics: m}
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func cacheKey(r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return cachePrefix + ":" + hex.EncodeToString(sum[:])
}

// Read answers from the cache or stores a 200 response.
func (ca *Cache) Read() gin.HandlerFunc {
	if ca == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cacheKey(c.Request)

		if body, err := ca.rdb.Get(ctx, key).Bytes(); err == nil {
			ca.metrics.CacheLookup(true)
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		} else if err != redis.Nil {
			log.Printf("WARN cache get: %v", err)
		}

		ca.metrics.CacheLookup(false)
		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() == http.StatusOK && cw.buf.Len() > 0 {
			if err := ca.rdb.Set(context.WithoutCancel(ctx), key, cw.buf.Bytes(), ca.ttl).Err(); err != nil {
				log.Printf("WARN cache set: %v", err)
			}
		}
	}
}

// Invalidate purges the cache after a successful write. Booking and inbox
// writes move unavailable dates, so every mutating route uses it.
func (ca *Cache) Invalidate() gin.HandlerFunc {
	if ca == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := ca.Purge(context.WithoutCancel(c.Request.Context())); err != nil {
			log.Printf("WARN cache purge: %v", err)
		}
	}
}

func (ca *Cache) Purge(ctx context.Context) error {
	if ca == nil {
		return nil
	}

	iter := ca.rdb.Scan(ctx, 0, cachePrefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return ca.rdb.Del(ctx, keys...).Err()
}

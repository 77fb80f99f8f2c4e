package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/postline/internal/pkg/logger"
	"github.com/avelichko/postline/internal/pkg/pagecache"
)

type cachedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachedWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cachedWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves GET responses from the page cache, keyed by the full
// request URL including the query string. Misses fall through to the
// handler and successful responses are stored for the cache TTL. A nil
// cache disables the middleware.
func CachePage(cache *pagecache.Cache) gin.HandlerFunc {
	if cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		ctx := c.Request.Context()

		if entry, ok := cache.Get(ctx, key); ok {
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		writer := &cachedWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			entry := &pagecache.Entry{
				Status:      writer.Status(),
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			}
			if err := cache.Set(ctx, key, entry); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("Failed to store page in cache")
			}
		}
	}
}

// InvalidateCache clears every cached page after a successful write. Any
// mutation may change listings, profiles, and feeds at once, so the whole
// keyspace is dropped rather than tracking which pages a write touched.
func InvalidateCache(cache *pagecache.Cache) gin.HandlerFunc {
	if cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 400 {
			if err := cache.InvalidateAll(c.Request.Context()); err != nil {
				logger.Warn().Err(err).Msg("Failed to invalidate page cache")
			}
		}
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/avelichko/postline/internal/pkg/pagecache"
)

func newCacheForTest(t *testing.T) *pagecache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return pagecache.New(client, "test:pages", 20*time.Second)
}

func newCachedRouter(cache *pagecache.Cache) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	hits := 0

	router := gin.New()
	router.GET("/posts", CachePage(cache), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	router.POST("/posts", InvalidateCache(cache), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	router.POST("/bad", InvalidateCache(cache), func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})
	return router, &hits
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestCachePage_SecondRequestServedFromCache(t *testing.T) {
	router, hits := newCachedRouter(newCacheForTest(t))

	first := get(router, "/posts")
	second := get(router, "/posts")

	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	// Only the first request reached the handler
	assert.Equal(t, 1, *hits)
}

func TestCachePage_DistinctQueriesCachedSeparately(t *testing.T) {
	router, hits := newCachedRouter(newCacheForTest(t))

	get(router, "/posts?page=1")
	get(router, "/posts?page=2")

	assert.Equal(t, 2, *hits)
}

func TestInvalidateCache_WriteClearsCachedPages(t *testing.T) {
	router, hits := newCachedRouter(newCacheForTest(t))

	get(router, "/posts")
	get(router, "/posts")
	assert.Equal(t, 1, *hits)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/posts", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	get(router, "/posts")
	assert.Equal(t, 2, *hits)
}

func TestInvalidateCache_FailedWriteKeepsCache(t *testing.T) {
	router, hits := newCachedRouter(newCacheForTest(t))

	get(router, "/posts")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	get(router, "/posts")
	assert.Equal(t, 1, *hits)
}

func TestCachePage_NilCacheDisablesCaching(t *testing.T) {
	router, hits := newCachedRouter(nil)

	for i := 0; i < 3; i++ {
		w := get(router, "/posts")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), strconv.Itoa(i+1))
	}
	assert.Equal(t, 3, *hits)
}

package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"healthgateway/internal/platform/config"
)

func TestNew(t *testing.T) {
	srv := New(config.Server{Addr: ":9090", RequestTimeout: 30 * time.Second}, http.NotFoundHandler())
	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 35*time.Second, srv.WriteTimeout)

	srv = New(config.Server{Addr: ":9090"}, http.NotFoundHandler())
	assert.Equal(t, 60*time.Second, srv.WriteTimeout)
}

//go:build integration

package cacheprovider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"healthgateway/pkg/platform/cacheprovider"
	"healthgateway/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cacheprovider.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cacheprovider.NewRedisCache(s.redis.Client)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestBlockedAccessEntryExpires() {
	ctx := context.Background()
	key := cacheprovider.BlockedAccessKey("HDID-1")

	s.Require().NoError(s.cache.AddItem(ctx, key, []string{"Medication"}, time.Second))

	var got []string
	ok, err := s.cache.GetItem(ctx, key, &got)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal([]string{"Medication"}, got)

	s.Eventually(func() bool {
		var v []string
		ok, err := s.cache.GetItem(ctx, key, &v)
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func (s *RedisCacheSuite) TestRemoveItem() {
	ctx := context.Background()
	s.Require().NoError(s.cache.AddItem(ctx, "k", "v", 0))
	s.Require().NoError(s.cache.RemoveItem(ctx, "k"))

	var v string
	ok, err := s.cache.GetItem(ctx, "k", &v)
	s.Require().NoError(err)
	s.False(ok)
}

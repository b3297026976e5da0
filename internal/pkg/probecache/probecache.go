package probecache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"

	"storyreel/internal/pkg/cache"
	"storyreel/internal/pipeline"
)

// 缓存 key 模式
const (
	durationKeyPrefix = "probe:duration:"
	durationTTL       = 24 * time.Hour
)

// CachingProber 带 Redis 缓存的音频时长探测器
// 同一音频地址只探测一次；缓存不可用时直接降级为透传探测
type CachingProber struct {
	prober pipeline.AudioProber
	cache  *cache.RedisCache
}

// New 创建带缓存的探测器
// cache 可以为 nil（未配置 Redis 时退化为直接探测）
func New(prober pipeline.AudioProber, cache *cache.RedisCache) *CachingProber {
	return &CachingProber{
		prober: prober,
		cache:  cache,
	}
}

// ProbeAudioDuration 探测音频时长，优先读缓存
func (p *CachingProber) ProbeAudioDuration(ctx context.Context, audioURL string) (float64, error) {
	if p.cache == nil {
		return p.prober.ProbeAudioDuration(ctx, audioURL)
	}

	key := durationKey(audioURL)

	var cached float64
	if err := p.cache.Get(ctx, key, &cached); err == nil && cached > 0 {
		return cached, nil
	}

	duration, err := p.prober.ProbeAudioDuration(ctx, audioURL)
	if err != nil {
		return 0, err
	}

	if err := p.cache.Set(ctx, key, duration, durationTTL); err != nil {
		log.Debug().Err(err).Str("audio_url", audioURL).Msg("failed to cache probed duration")
	}

	return duration, nil
}

// durationKey 生成缓存 key（URL 可能很长，取 SHA1 摘要）
func durationKey(audioURL string) string {
	sum := sha1.Sum([]byte(audioURL))
	return durationKeyPrefix + hex.EncodeToString(sum[:])
}

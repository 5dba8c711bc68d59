package cache

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// BoardCache 以 Redis 快取每位使用者的看板列表，其餘操作直接轉給底層 store
// 任何寫入都會遞增擁有者的世代並清除快取；回填只在世代未變時寫入，
// 避免和寫入同時進行的讀取把舊列表放回去。Redis 故障時退回底層 store，不讓請求失敗
type BoardCache struct {
	store.BoardStore
	cache Cache
	ttl   time.Duration
	log   log.FieldLogger
}

func NewBoardCache(base store.BoardStore, c Cache, ttl time.Duration, logger log.FieldLogger) *BoardCache {
	if base == nil {
		panic("cache.NewBoardCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardCache{BoardStore: base, cache: c, ttl: ttl, log: logger}
}

// fillScript 只在世代與讀取 store 前相同時寫入列表
// KEYS[1] 世代 key，KEYS[2] 列表 key；ARGV 為世代、列表 JSON、TTL 毫秒
const fillScript = `
local gen = redis.call('GET', KEYS[1])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1`

func boardsKey(userID string) string {
	return "boards:user:" + userID
}

func generationKey(userID string) string {
	return "boards:gen:" + userID
}

func (b *BoardCache) ListBoards(ctx context.Context, userID string) ([]model.Board, error) {
	if boards, ok := b.load(ctx, userID); ok {
		return boards, nil
	}
	gen, genOK := b.generation(ctx, userID)
	boards, err := b.BoardStore.ListBoards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if genOK {
		b.save(ctx, userID, gen, boards)
	}
	return boards, nil
}

func (b *BoardCache) CreateBoard(ctx context.Context, board *model.Board) error {
	if err := b.BoardStore.CreateBoard(ctx, board); err != nil {
		return err
	}
	b.evict(ctx, board.UserID)
	return nil
}

func (b *BoardCache) UpdateBoard(ctx context.Context, board *model.Board) error {
	if err := b.BoardStore.UpdateBoard(ctx, board); err != nil {
		return err
	}
	b.evict(ctx, board.UserID)
	return nil
}

func (b *BoardCache) DeleteBoard(ctx context.Context, id string) error {
	// 先查出擁有者才知道要清哪個 key
	existing, err := b.BoardStore.GetBoard(ctx, id)
	if err != nil {
		return err
	}
	if err := b.BoardStore.DeleteBoard(ctx, id); err != nil {
		return err
	}
	b.evict(ctx, existing.UserID)
	return nil
}

func (b *BoardCache) load(ctx context.Context, userID string) ([]model.Board, bool) {
	if b.cache == nil {
		return nil, false
	}
	key := boardsKey(userID)
	data, err := b.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			b.log.WithError(err).WithField("key", key).Warn("board cache read failed")
		}
		return nil, false
	}
	var boards []model.Board
	if err := sonic.Unmarshal(data, &boards); err != nil {
		b.log.WithError(err).WithField("key", key).Warn("board cache entry corrupt, dropping")
		_ = b.cache.Del(ctx, key).Err()
		return nil, false
	}
	return boards, true
}

// generation 讀取目前世代；尚未寫入過的使用者為 "0"
// 讀取失敗時回傳 false，這次不回填
func (b *BoardCache) generation(ctx context.Context, userID string) (string, bool) {
	if b.cache == nil || b.ttl == 0 {
		return "", false
	}
	gen, err := b.cache.Get(ctx, generationKey(userID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		b.log.WithError(err).Warn("board cache generation read failed")
		return "", false
	}
	return gen, true
}

func (b *BoardCache) save(ctx context.Context, userID, gen string, boards []model.Board) {
	data, err := sonic.Marshal(boards)
	if err != nil {
		return
	}
	keys := []string{generationKey(userID), boardsKey(userID)}
	ttl := b.ttl.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}
	if err := b.cache.Eval(ctx, fillScript, keys, gen, data, ttl).Err(); err != nil {
		b.log.WithError(err).Warn("board cache write failed")
	}
}

// evict 先遞增世代再刪除列表，進行中的回填會因世代不同而放棄
func (b *BoardCache) evict(ctx context.Context, userID string) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Incr(ctx, generationKey(userID)).Err(); err != nil {
		b.log.WithError(err).Warn("board cache generation bump failed")
	}
	if err := b.cache.Del(ctx, boardsKey(userID)).Err(); err != nil {
		b.log.WithError(err).Warn("board cache evict failed")
	}
}

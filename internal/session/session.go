// Package session はクライアント側で生成・保存する匿名セッションIDを扱います。
// IDは不透明なベアラーキーで、持っている人がそのセッションのデータを読み書きできます。
package session

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"go_5s_keep/internal/clock"
)

// StorageKey はセッションIDを保存するキー
const StorageKey = "5s_session_id"

// Prefix は生成されるIDの接頭辞
const Prefix = "session_"

// suffixSpace は base36 で最大8桁
const suffixSpace = 36 * 36 * 36 * 36 * 36 * 36 * 36 * 36

type Provider struct {
	store Store
	clock clock.Clock
	rand  func() int64

	mu sync.Mutex
}

func NewProvider(store Store, c clock.Clock) *Provider {
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Provider{
		store: store,
		clock: c,
		rand:  func() int64 { return rand.Int64N(suffixSpace) },
	}
}

// GetSessionID は保存済みのIDを返します。なければ生成して保存してから返します
func (p *Provider) GetSessionID() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok, err := p.store.Get(StorageKey)
	if err != nil {
		return "", fmt.Errorf("load session id: %w", err)
	}
	if ok {
		return id, nil
	}

	id = p.generate()
	if err := p.store.Set(StorageKey, id); err != nil {
		return "", fmt.Errorf("persist session id: %w", err)
	}
	return id, nil
}

// ClearSession は保存済みのIDを削除します。サーバー側の行はそのまま残ります
func (p *Provider) ClearSession() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Delete(StorageKey)
}

func (p *Provider) generate() string {
	millis := p.clock.Now().UnixMilli()
	return Prefix + strconv.FormatInt(millis, 10) + "_" + strconv.FormatInt(p.rand(), 36)
}

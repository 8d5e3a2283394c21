package lib

import (
	"io"
	"sync"

	"github.com/z-sdk/multisert/lib/errorx"
	"golang.org/x/sync/singleflight"
)

// ResourceManager 资源管理器提供可复用的资源（数据库连接池、缓存客户端等）
type ResourceManager struct {
	resources map[string]io.Closer
	calls     singleflight.Group
	lock      sync.RWMutex
}

// NewResourceManager 返回可复用资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		resources: make(map[string]io.Closer),
	}
}

// Close 关闭并移除所有资源，返回合并后的错误
func (m *ResourceManager) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	var errs errorx.Errors
	for key, res := range m.resources {
		if err := res.Close(); err != nil {
			errs.Append(err)
		}
		delete(m.resources, key)
	}
	return errs.Err()
}

// Remove 关闭并移除键对应的资源，资源不存在时什么也不做
func (m *ResourceManager) Remove(key string) error {
	m.lock.Lock()
	res, ok := m.resources[key]
	delete(m.resources, key)
	m.lock.Unlock()

	if !ok {
		return nil
	}
	return res.Close()
}

// Get 获取键对应的资源，不存在时通过 create 创建；同一个键的并发创建只执行一次
func (m *ResourceManager) Get(key string, create func() (io.Closer, error)) (io.Closer, error) {
	m.lock.RLock()
	res, ok := m.resources[key]
	m.lock.RUnlock()
	if ok {
		return res, nil
	}

	result, err, _ := m.calls.Do(key, func() (interface{}, error) {
		m.lock.RLock()
		res, ok := m.resources[key]
		m.lock.RUnlock()
		if ok {
			return res, nil
		}

		res, err := create()
		if err != nil {
			return nil, err
		}

		m.lock.Lock()
		m.resources[key] = res
		m.lock.Unlock()
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(io.Closer), nil
}

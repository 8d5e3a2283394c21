package lib

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type dummyResource struct {
	closed int32
	err    error
}

func (r *dummyResource) Close() error {
	atomic.AddInt32(&r.closed, 1)
	return r.err
}

func TestResourceManager_Get(t *testing.T) {
	manager := NewResourceManager()
	var created int32

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := manager.Get("key", func() (io.Closer, error) {
				atomic.AddInt32(&created, 1)
				return new(dummyResource), nil
			})
			assert.Nil(t, err)
			assert.NotNil(t, res)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&created))
}

func TestResourceManager_GetError(t *testing.T) {
	manager := NewResourceManager()
	errDummy := errors.New("dummy")

	_, err := manager.Get("key", func() (io.Closer, error) {
		return nil, errDummy
	})
	assert.Equal(t, errDummy, err)

	// 创建失败的资源不会被缓存
	res, err := manager.Get("key", func() (io.Closer, error) {
		return new(dummyResource), nil
	})
	assert.Nil(t, err)
	assert.NotNil(t, res)
}

func TestResourceManager_Close(t *testing.T) {
	manager := NewResourceManager()
	good := new(dummyResource)
	bad := &dummyResource{err: errors.New("close failed")}

	_, _ = manager.Get("good", func() (io.Closer, error) { return good, nil })
	_, _ = manager.Get("bad", func() (io.Closer, error) { return bad, nil })

	assert.EqualError(t, manager.Close(), "close failed")
	assert.Equal(t, int32(1), atomic.LoadInt32(&good.closed))
	assert.Equal(t, int32(1), atomic.LoadInt32(&bad.closed))
	assert.Nil(t, manager.Close())
}

func TestResourceManager_Remove(t *testing.T) {
	manager := NewResourceManager()
	res := new(dummyResource)
	_, _ = manager.Get("key", func() (io.Closer, error) { return res, nil })

	assert.Nil(t, manager.Remove("key"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&res.closed))
	assert.Nil(t, manager.Remove("key"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&res.closed))

	// 移除后重新创建
	fresh := new(dummyResource)
	got, err := manager.Get("key", func() (io.Closer, error) { return fresh, nil })
	assert.Nil(t, err)
	assert.Equal(t, fresh, got)
}

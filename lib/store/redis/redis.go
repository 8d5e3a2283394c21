package redis

import (
	"fmt"
	"io"
	"time"

	red "github.com/go-redis/redis"
	"github.com/z-sdk/multisert/lib"
	"github.com/z-sdk/multisert/lib/logx"
)

const (
	ClusterMode    = "cluster"
	StandaloneMode = "standalone"

	defaultDatabase = 0
	maxRetries      = 3
	idleConns       = 8
	slowThreshold   = 100 * time.Millisecond
)

var clientManager = lib.NewResourceManager()

type (
	// Redis 一个 redis 节点，底层客户端按地址复用
	Redis struct {
		Addr     string
		Mode     string
		Password string
	}

	// Client 单机和集群客户端的公共命令集
	Client interface {
		red.Cmdable
		io.Closer
	}
)

func NewRedis(addr, mode, password string) *Redis {
	return &Redis{
		Addr:     addr,
		Mode:     mode,
		Password: password,
	}
}

// RPush 将值追加到列表尾部，返回追加后的列表长度
func (r *Redis) RPush(key string, values ...interface{}) (int64, error) {
	client, err := r.getClient()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	n, err := client.RPush(key, values...).Result()
	r.logDuration("rpush", key, start)
	return n, err
}

// LRange 返回列表 [start, stop] 区间内的元素
func (r *Redis) LRange(key string, start, stop int64) ([]string, error) {
	client, err := r.getClient()
	if err != nil {
		return nil, err
	}

	return client.LRange(key, start, stop).Result()
}

// LLen 返回列表长度
func (r *Redis) LLen(key string) (int64, error) {
	client, err := r.getClient()
	if err != nil {
		return 0, err
	}

	return client.LLen(key).Result()
}

// Del 删除键，返回删除的数量
func (r *Redis) Del(keys ...string) (int64, error) {
	client, err := r.getClient()
	if err != nil {
		return 0, err
	}

	return client.Del(keys...).Result()
}

// Ping 检测节点是否可用
func (r *Redis) Ping() bool {
	client, err := r.getClient()
	if err != nil {
		return false
	}

	return client.Ping().Err() == nil
}

func (r *Redis) String() string {
	return r.Addr
}

func (r *Redis) getClient() (Client, error) {
	switch r.Mode {
	case ClusterMode:
		return getCluster(r.Addr, r.Password)
	case StandaloneMode:
		return getClient(r.Addr, r.Password)
	default:
		return nil, fmt.Errorf("不支持的 redis 模式 '%s'", r.Mode)
	}
}

func (r *Redis) logDuration(cmd, key string, start time.Time) {
	if duration := time.Since(start); duration > slowThreshold {
		logx.WithDuration(duration).Slowf("[REDIS] 慢命令 - %s %s@%s", cmd, key, r.Addr)
	}
}

// clientKey 客户端缓存键，模式和密码不同的同一地址不能共用客户端
func clientKey(mode, addr, password string) string {
	return mode + "://" + password + "@" + addr
}

func getClient(addr, password string) (Client, error) {
	val, err := clientManager.Get(clientKey(StandaloneMode, addr, password), func() (io.Closer, error) {
		return red.NewClient(&red.Options{
			Addr:         addr,
			Password:     password,
			DB:           defaultDatabase,
			MaxRetries:   maxRetries,
			MinIdleConns: idleConns,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	client, ok := val.(*red.Client)
	if !ok {
		return nil, fmt.Errorf("redis 客户端类型错误 %T, 地址: %s", val, addr)
	}
	return client, nil
}

func getCluster(addr, password string) (Client, error) {
	val, err := clientManager.Get(clientKey(ClusterMode, addr, password), func() (io.Closer, error) {
		return red.NewClusterClient(&red.ClusterOptions{
			Addrs:        []string{addr},
			Password:     password,
			MaxRetries:   maxRetries,
			MinIdleConns: idleConns,
		}), nil
	})
	if err != nil {
		return nil, err
	}

	cluster, ok := val.(*red.ClusterClient)
	if !ok {
		return nil, fmt.Errorf("redis 集群客户端类型错误 %T, 地址: %s", val, addr)
	}
	return cluster, nil
}

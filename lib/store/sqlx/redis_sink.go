package sqlx

import (
	"database/sql"

	"github.com/z-sdk/multisert/lib/hash"
	"github.com/z-sdk/multisert/lib/store/redis"
)

type (
	// RedisSink 将批量语句追加到 redis 列表，由下游消费者执行。
	// 同一个列表键总是落在同一个节点上。
	RedisSink struct {
		key  string
		node *redis.Redis
	}

	// queuedResult 入队结果，LastInsertId 为入队后的列表长度
	queuedResult struct {
		length int64
	}
)

// NewRedisSink 创建写入列表 key 的执行者，节点按 key 的哈希选取
func NewRedisSink(key string, nodes ...*redis.Redis) (*RedisSink, error) {
	if len(nodes) == 0 {
		return nil, ErrNoRedisNode
	}

	return &RedisSink{
		key:  key,
		node: nodes[hash.Index(key, len(nodes))],
	}, nil
}

func (s *RedisSink) Exec(query string, args ...interface{}) (sql.Result, error) {
	stmt, err := formatQuery(query, args...)
	if err != nil {
		return nil, err
	}

	n, err := s.node.RPush(s.key, stmt)
	if err != nil {
		logSqlError(stmt, err)
		return nil, err
	}

	return queuedResult{length: n}, nil
}

// Node 返回实际写入的节点
func (s *RedisSink) Node() *redis.Redis {
	return s.node
}

func (r queuedResult) LastInsertId() (int64, error) {
	return r.length, nil
}

func (r queuedResult) RowsAffected() (int64, error) {
	return 1, nil
}

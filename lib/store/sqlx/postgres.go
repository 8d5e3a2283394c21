package sqlx

import _ "github.com/lib/pq"

const postgresDriverName = "postgres"

// NewPostgres 创建 PostgreSQL 数据库实例，仅支持默认插入策略
func NewPostgres(dataSourceName string, opts ...Option) Conn {
	return NewConn(postgresDriverName, dataSourceName, opts...)
}

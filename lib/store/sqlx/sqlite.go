package sqlx

import _ "github.com/mattn/go-sqlite3"

const sqliteDriverName = "sqlite3"

// NewSqlite 创建 SQLite 数据库实例，库名为 main，不支持 ignore 插入策略
func NewSqlite(dataSourceName string, opts ...Option) Conn {
	return NewConn(sqliteDriverName, dataSourceName, opts...)
}

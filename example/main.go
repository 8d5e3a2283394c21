package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/z-sdk/multisert/lib/conf"
	"github.com/z-sdk/multisert/lib/logx"
	"github.com/z-sdk/multisert/lib/store/redis"
	"github.com/z-sdk/multisert/lib/store/sqlx"
)

const (
	mysqlSink = "mysql"
	redisSink = "redis"
)

type (
	Config struct {
		Log        logx.LogConf       `yaml:"log"`
		Sink       string             `yaml:"sink"` // mysql（默认）/ redis
		DataSource string             `yaml:"data_source"`
		Redis      []redis.Conf       `yaml:"redis"`
		QueueKey   string             `yaml:"queue_key"` // redis 模式下的列表键，默认 multisert#库名.表名
		Multisert  sqlx.MultisertConf `yaml:"multisert"`
		Rows       int                `yaml:"rows"`
	}

	options struct {
		Config string `short:"f" long:"config" default:"etc/loader.yaml" description:"配置文件"`
	}
)

// generateRow 按字段个数生成一行递增的整数
func generateRow(i, fields int) sqlx.Entry {
	entry := make(sqlx.Entry, fields)
	for j := range entry {
		entry[j] = sqlx.Int(i + j)
	}
	return entry
}

// newSink 按配置创建执行者，返回的关闭函数释放其连接
func newSink(c Config) (sqlx.Sink, func() error, error) {
	switch c.Sink {
	case "", mysqlSink:
		conn := sqlx.NewMySQL(c.DataSource)
		return conn, conn.Close, nil
	case redisSink:
		nodes := make([]*redis.Redis, 0, len(c.Redis))
		for _, rc := range c.Redis {
			if err := rc.Validate(); err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, rc.NewRedis())
		}

		key := c.QueueKey
		if len(key) == 0 {
			key = fmt.Sprintf("multisert#%s.%s", c.Multisert.Namespace, c.Multisert.Table)
		}
		sink, err := sqlx.NewRedisSink(key, nodes...)
		if err != nil {
			return nil, nil, err
		}
		return sink, func() error { return nil }, nil
	default:
		return nil, nil, errors.Errorf("不支持的执行者 '%s'", c.Sink)
	}
}

func load(c Config) error {
	sink, closeSink, err := newSink(c)
	if err != nil {
		return err
	}
	defer closeSink()

	m, err := sqlx.NewMultisert(sink, c.Multisert)
	if err != nil {
		return err
	}

	return m.WithBuffering(func(m *sqlx.Multisert) error {
		for i := 0; i < c.Rows; i++ {
			if _, err := m.Append(generateRow(i, len(c.Multisert.Fields))); err != nil {
				return err
			}
		}
		return nil
	})
}

// run 执行加载并返回进程退出码
func run(args []string) int {
	var opts options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	var c Config
	if err := conf.LoadConfig(opts.Config, &c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := logx.Setup(c.Log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logx.Close()

	start := time.Now()
	if err := load(c); err != nil {
		logx.Errorf("写入失败: %v", err)
		return 1
	}

	fmt.Printf("写入 %s 行，耗时 %v\n", humanize.Comma(int64(c.Rows)), time.Since(start))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}

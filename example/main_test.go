package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/z-sdk/multisert/lib/conf"
	"github.com/z-sdk/multisert/lib/store/redis"
	"github.com/z-sdk/multisert/lib/store/sqlx"
)

func TestLoadExampleConfig(t *testing.T) {
	var c Config
	require.Nil(t, conf.LoadConfig("etc/loader.yaml", &c))

	assert.Equal(t, "console", c.Log.Mode)
	assert.Equal(t, mysqlSink, c.Sink)
	assert.Equal(t, 100000, c.Rows)
	assert.Equal(t, sqlx.IgnoreStrategy, c.Multisert.Strategy)
	assert.Equal(t, []string{"field_1", "field_2", "field_3", "field_4"}, c.Multisert.Fields)
	assert.Nil(t, c.Multisert.Validate())
}

func TestGenerateRow(t *testing.T) {
	assert.Equal(t, sqlx.Entry{sqlx.Int(3), sqlx.Int(4), sqlx.Int(5)}, generateRow(3, 3))
}

func TestNewSink(t *testing.T) {
	_, _, err := newSink(Config{Sink: "kafka"})
	assert.NotNil(t, err)

	_, _, err = newSink(Config{Sink: redisSink})
	assert.Equal(t, sqlx.ErrNoRedisNode, err)

	_, _, err = newSink(Config{Sink: redisSink, Redis: []redis.Conf{{Mode: redis.StandaloneMode}}})
	assert.Equal(t, redis.ErrEmptyHost, err)

	sink, closeSink, err := newSink(Config{DataSource: "root@tcp(127.0.0.1:3306)/db"})
	assert.Nil(t, err)
	assert.NotNil(t, sink)
	assert.Nil(t, closeSink())
}

func TestRun_Help(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--help"}))
}

func TestRun_BadArgs(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--bogus"}))
	assert.Equal(t, 1, run([]string{"-f", "not-exist.yaml"}))
}

func TestRun_RedisSink(t *testing.T) {
	s, err := miniredis.Run()
	require.Nil(t, err)
	defer s.Close()

	dir, err := ioutil.TempDir("", "loader")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "loader.yaml")
	content := fmt.Sprintf(`log:
  mode: console
sink: redis
redis:
  - host: %s
    mode: standalone
multisert:
  namespace: db
  table: t
  fields: [a, b]
  max_buffer_count: 2
rows: 3
`, s.Addr())
	require.Nil(t, ioutil.WriteFile(file, []byte(content), 0644))

	assert.Equal(t, 0, run([]string{"-f", file}))

	queued, err := s.List("multisert#db.t")
	assert.Nil(t, err)
	assert.Equal(t, []string{
		"INSERT INTO db.t (a,b) VALUES (0,1),(1,2)",
		"INSERT INTO db.t (a,b) VALUES (2,3)",
	}, queued)
}

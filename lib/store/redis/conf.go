package redis

import "errors"

var (
	ErrEmptyHost = errors.New("redis 地址不能为空")
	ErrEmptyMode = errors.New("redis 模式不能为空")
)

// Conf redis 节点配置
type Conf struct {
	Host     string `yaml:"host"`
	Mode     string `yaml:"mode"` // standalone / cluster
	Password string `yaml:"password"`
}

// NewRedis 按配置创建 Redis 实例
func (c Conf) NewRedis() *Redis {
	return NewRedis(c.Host, c.Mode, c.Password)
}

// Validate 校验配置是否完整
func (c Conf) Validate() error {
	if len(c.Host) == 0 {
		return ErrEmptyHost
	}
	if len(c.Mode) == 0 {
		return ErrEmptyMode
	}
	return nil
}

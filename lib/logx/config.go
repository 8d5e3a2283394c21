package logx

// LogConf 日志配置
type LogConf struct {
	ServiceName string `yaml:"service_name"`
	Mode        string `yaml:"mode"`  // console / volume，其他值按文件模式处理
	Path        string `yaml:"path"`  // file 和 volume 模式下的日志目录
	Level       string `yaml:"level"` // info / error / fatal，默认 info
}

package conf

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// LoadConfig 从 yaml 文件加载配置到 v，未知字段视为错误
func LoadConfig(file string, v interface{}) error {
	content, err := ioutil.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "读取配置文件 %s 失败", file)
	}

	return LoadConfigFromBytes(content, v)
}

// LoadConfigFromBytes 从 yaml 内容加载配置，内容中的 ${VAR} 按环境变量展开
func LoadConfigFromBytes(content []byte, v interface{}) error {
	expanded := os.ExpandEnv(string(content))
	if err := yaml.UnmarshalStrict([]byte(expanded), v); err != nil {
		return errors.Wrap(err, "解析配置失败")
	}
	return nil
}

// MustLoad 加载配置，出错时直接退出
func MustLoad(file string, v interface{}) {
	if err := LoadConfig(file, v); err != nil {
		log.Fatalf("错误: 配置文件 %s, %s", file, err.Error())
	}
}

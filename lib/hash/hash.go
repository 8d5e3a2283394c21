package hash

import "github.com/spaolacci/murmur3"

// Hash 返回数据的 murmur3 64位哈希值
func Hash(data []byte) uint64 {
	return murmur3.Sum64(data)
}

// Index 将键映射到 [0, n) 的槽位，n 必须大于零
func Index(key string, n int) int {
	return int(Hash([]byte(key)) % uint64(n))
}

package sysx

import "os"

const unknownHost = "localhost"

var hostname string

func init() {
	var err error
	hostname, err = os.Hostname()
	if err != nil || len(hostname) == 0 {
		if hostname = os.Getenv("HOSTNAME"); len(hostname) == 0 {
			hostname = unknownHost
		}
	}
}

// Hostname 返回当前主机名
func Hostname() string {
	return hostname
}
